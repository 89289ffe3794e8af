/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader.go
Description: Tabular data loaders. Reads CSV and Excel tables from local files or HTTP(S)
sources into raw tables, selecting the format by file extension.
*/

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kleascm/ila-classifier/pkg/dataset"
)

// DefaultTimeout bounds remote fetches when a format has no timeout of its own
const DefaultTimeout = 30 * time.Second

// ErrUnsupportedFormat is returned for sources whose extension has no registered format
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Loader reads a table from a source
type Loader interface {
	Load(ctx context.Context, source string) (*dataset.Table, error)
}

// Writer writes a table to a local path
type Writer interface {
	Write(path string, t *dataset.Table) error
}

// Format reads and writes one file format
type Format interface {
	Loader
	Writer
	Extension() string
}

var registry = map[string]func() Format{
	".csv":  func() Format { return &CSV{} },
	".xlsx": func() Format { return &XLSX{} },
	".xlsm": func() Format { return &XLSX{} },
}

// Extensions returns the registered extensions in sorted order
func Extensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ForPath returns the format for the source's extension
func ForPath(source string) (Format, error) {
	ext := strings.ToLower(path.Ext(sourcePath(source)))
	factory, ok := registry[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
	}
	return factory(), nil
}

// Load reads a table, choosing the format from the source's extension
func Load(ctx context.Context, source string) (*dataset.Table, error) {
	format, err := ForPath(source)
	if err != nil {
		return nil, err
	}
	return format.Load(ctx, source)
}

// isRemote reports whether the source is fetched over HTTP(S)
func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// sourcePath strips the scheme, host and query of remote sources
func sourcePath(source string) string {
	if !isRemote(source) {
		return filepath.ToSlash(source)
	}
	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	return u.Path
}

// open returns a reader over a local file or a remote HTTP(S) resource
func open(ctx context.Context, source string, timeout time.Duration) (io.ReadCloser, error) {
	if !isRemote(source) {
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		return file, nil
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid data url: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("data source returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// buildTable turns header plus records into a table of normalized, padded rows.
// Blank records are skipped and records longer than the header are truncated.
func buildTable(header []string, records [][]string) (*dataset.Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: no header row", dataset.ErrValidation)
	}

	t := &dataset.Table{
		Columns: append([]string(nil), header...),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		row := make([]string, len(header))
		for i := range row {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			row[i] = dataset.Normalize(cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if cell != "" {
			return false
		}
	}
	return true
}

// denormalize writes missing cells back as empty strings
func denormalize(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if cell != dataset.Missing {
			out[i] = cell
		}
	}
	return out
}
