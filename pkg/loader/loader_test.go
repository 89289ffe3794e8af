/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader_test.go
Description: Tests for the CSV and Excel loaders, remote sources and format conversion.
*/

package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/kleascm/ila-classifier/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = "id,outlook,windy,play\n" +
	"1,sunny,no,yes\n" +
	"2,rainy,,no\n" +
	"\n" +
	"3,overcast,NA\n" +
	"4,sunny,yes,yes,extra\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, t.TempDir(), "weather.csv", weatherCSV)

	tbl, err := loader.Load(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "outlook", "windy", "play"}, tbl.Columns)
	assert.Equal(t, [][]string{
		{"1", "sunny", "no", "yes"},
		{"2", "rainy", dataset.Missing, "no"},
		{"3", "overcast", dataset.Missing, dataset.Missing},
		{"4", "sunny", "yes", "yes"},
	}, tbl.Rows)
}

func TestLoadCSVStripsBOM(t *testing.T) {
	p := writeFile(t, t.TempDir(), "bom.csv", "\uFEFFid,a,class\n1,x,A\n")

	tbl, err := loader.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "id", tbl.Columns[0])
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := loader.Load(ctx, writeFile(t, dir, "empty.csv", ""))
	assert.True(t, errors.Is(err, dataset.ErrValidation))

	_, err = loader.Load(ctx, writeFile(t, dir, "broken.csv", "id,a,class\n1,\"x,A\n"))
	assert.Error(t, err)

	_, err = loader.Load(ctx, filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	f, err := loader.ForPath("data/train.CSV")
	require.NoError(t, err)
	assert.IsType(t, &loader.CSV{}, f)

	f, err = loader.ForPath("train.xlsm")
	require.NoError(t, err)
	assert.IsType(t, &loader.XLSX{}, f)

	f, err = loader.ForPath("https://example.com/data/train.xlsx?raw=1")
	require.NoError(t, err)
	assert.IsType(t, &loader.XLSX{}, f)

	for _, p := range []string{"train.xls", "train.json", "train"} {
		_, err = loader.ForPath(p)
		assert.True(t, errors.Is(err, loader.ErrUnsupportedFormat), p)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "weather.xlsx")
	want := &dataset.Table{
		Columns: []string{"id", "outlook", "windy", "play"},
		Rows: [][]string{
			{"1", "sunny", "no", "yes"},
			{"2", "rainy", dataset.Missing, "no"},
			{"3", "overcast", "yes", dataset.Missing},
		},
	}

	require.NoError(t, (&loader.XLSX{}).Write(p, want))

	got, err := loader.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCSVWriteRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	want := &dataset.Table{
		Columns: []string{"id", "note", "class"},
		Rows: [][]string{
			{"1", "a, quoted \"cell\"", "A"},
			{"2", dataset.Missing, "B"},
		},
	}

	require.NoError(t, (&loader.CSV{}).Write(p, want))

	got, err := loader.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(weatherCSV))
	}))
	defer srv.Close()

	ctx := context.Background()
	tbl, err := loader.Load(ctx, srv.URL+"/weather.csv")
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.NumRows())

	_, err = loader.Load(ctx, srv.URL+"/missing.csv")
	assert.ErrorContains(t, err, "404")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "weather.csv", weatherCSV)
	ctx := context.Background()

	stats, err := loader.Convert(ctx, src, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "weather.xlsx"), stats.Target)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 4, stats.Columns)

	back := filepath.Join(dir, "back.csv")
	_, err = loader.Convert(ctx, stats.Target, back)
	require.NoError(t, err)

	orig, err := loader.Load(ctx, src)
	require.NoError(t, err)
	converted, err := loader.Load(ctx, back)
	require.NoError(t, err)
	assert.Equal(t, orig, converted)

	_, err = loader.Convert(ctx, src, filepath.Join(dir, "weather.json"))
	assert.True(t, errors.Is(err, loader.ErrUnsupportedFormat))
}

func TestDefaultTarget(t *testing.T) {
	got, err := loader.DefaultTarget("data/train.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "data/train.csv", got)

	got, err = loader.DefaultTarget("https://example.com/sets/train.csv")
	require.NoError(t, err)
	assert.Equal(t, "train.xlsx", got)

	_, err = loader.DefaultTarget("train.txt")
	assert.Error(t, err)
}

func TestBatchConvertContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "id,a,class\n1,x,A\n")
	writeFile(t, dir, "b.csv", "id,a,class\n1,\"x,A\n")
	writeFile(t, dir, "c.csv", "id,a,class\n1,y,B\n2,z,C\n")
	writeFile(t, dir, "notes.txt", "ignored")

	stats, err := loader.BatchConvert(context.Background(), dir, ".csv", ".xlsx")
	assert.Error(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, filepath.Join(dir, "a.xlsx"), stats[0].Target)
	assert.Equal(t, 2, stats[1].Rows)

	_, statErr := os.Stat(filepath.Join(dir, "c.xlsx"))
	assert.NoError(t, statErr)
}

func TestBatchConvertEmptyDir(t *testing.T) {
	stats, err := loader.BatchConvert(context.Background(), t.TempDir(), ".xlsx", ".csv")
	assert.NoError(t, err)
	assert.Empty(t, stats)
}
