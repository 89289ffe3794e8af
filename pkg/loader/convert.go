/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: convert.go
Description: Conversion between CSV and Excel tables, for single files and whole directories.
*/

package loader

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ConvertStats describes one converted file
type ConvertStats struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// counterpart maps each extension to the one it converts to by default
var counterpart = map[string]string{
	".csv":  ".xlsx",
	".xlsx": ".csv",
	".xlsm": ".csv",
}

// DefaultTarget returns src with the extension of its counterpart format
func DefaultTarget(src string) (string, error) {
	p := sourcePath(src)
	ext := strings.ToLower(path.Ext(p))
	to, ok := counterpart[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if isRemote(src) {
		p = path.Base(p)
	} else {
		p = src
	}
	return strings.TrimSuffix(p, path.Ext(p)) + to, nil
}

// Convert reads src and writes it to dst in the format dst's extension names.
// An empty dst converts to the counterpart format next to src.
func Convert(ctx context.Context, src, dst string) (*ConvertStats, error) {
	if dst == "" {
		target, err := DefaultTarget(src)
		if err != nil {
			return nil, err
		}
		dst = target
	}

	in, err := ForPath(src)
	if err != nil {
		return nil, err
	}
	out, err := ForPath(dst)
	if err != nil {
		return nil, err
	}

	t, err := in.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := out.Write(dst, t); err != nil {
		return nil, fmt.Errorf("%s: %w", dst, err)
	}

	return &ConvertStats{
		Source:  src,
		Target:  dst,
		Rows:    t.NumRows(),
		Columns: len(t.Columns),
	}, nil
}

// BatchConvert converts every file in dir with extension fromExt to toExt.
// Failed files do not stop the batch; their errors are joined into the returned error.
func BatchConvert(ctx context.Context, dir, fromExt, toExt string) ([]ConvertStats, error) {
	if _, err := ForPath("x" + toExt); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+fromExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", fromExt, err)
	}

	var stats []ConvertStats
	var errs []error
	for _, src := range matches {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		dst := strings.TrimSuffix(src, filepath.Ext(src)) + toExt
		s, err := Convert(ctx, src, dst)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stats = append(stats, *s)
	}
	return stats, errors.Join(errs...)
}
