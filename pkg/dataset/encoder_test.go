/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encoder_test.go
Description: Tests for the categorical encoder. Covers first-occurrence code assignment,
missing value normalization, shape validation and test-time encoding against training
codebooks.
*/

package dataset_test

import (
	"errors"
	"testing"

	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTable() *dataset.Table {
	return &dataset.Table{
		Columns: []string{"id", "outlook", "wind", "play"},
		Rows: [][]string{
			{"1", "sunny", "weak", "no"},
			{"2", "rain", "strong", "no"},
			{"3", "overcast", "weak", "yes"},
			{"4", "sunny", "", "yes"},
		},
	}
}

func TestEncodeColumnFirstOccurrence(t *testing.T) {
	codes, book := dataset.EncodeColumn([]string{"b", "a", "b", "c", "a"})

	assert.Equal(t, []int{0, 1, 0, 2, 1}, codes)
	assert.Equal(t, []string{"b", "a", "c"}, book.Values)
}

func TestEncodeColumnDeterministic(t *testing.T) {
	values := []string{"x", "y", "", "x", "NaN", "z"}

	codes1, book1 := dataset.EncodeColumn(values)
	codes2, book2 := dataset.EncodeColumn(values)

	assert.Equal(t, codes1, codes2)
	assert.Equal(t, book1, book2)
}

func TestEncodeColumnMissingValues(t *testing.T) {
	codes, book := dataset.EncodeColumn([]string{"", "NA", "v", "null"})

	assert.Equal(t, []int{0, 0, 1, 0}, codes)
	assert.Equal(t, []string{dataset.Missing, "v"}, book.Values)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, dataset.Missing, dataset.Normalize(""))
	assert.Equal(t, dataset.Missing, dataset.Normalize("#N/A"))
	assert.Equal(t, "0", dataset.Normalize("0"))
	assert.Equal(t, " spaced ", dataset.Normalize(" spaced "))
}

func TestBuild(t *testing.T) {
	enc, err := dataset.Build(weatherTable())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3", "4"}, enc.IDs)
	assert.Equal(t, []string{"outlook", "wind"}, enc.Headers)
	assert.Equal(t, "play", enc.ClassName)
	assert.Equal(t, [][]int{{0, 0}, {1, 1}, {2, 0}, {0, 2}}, enc.X)
	assert.Equal(t, []int{0, 0, 1, 1}, enc.Y)
	assert.Equal(t, []string{"sunny", "rain", "overcast"}, enc.InvMaps[0].Values)
	assert.Equal(t, []string{"weak", "strong", dataset.Missing}, enc.InvMaps[1].Values)
	assert.Equal(t, []string{"no", "yes"}, enc.InvMapY.Values)
	assert.NoError(t, enc.Validate())
}

func TestBuildRejectsNarrowTables(t *testing.T) {
	_, err := dataset.Build(&dataset.Table{
		Columns: []string{"id", "class"},
		Rows:    [][]string{{"1", "a"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrValidation))

	_, err = dataset.Build(nil)
	assert.True(t, errors.Is(err, dataset.ErrValidation))
}

func TestBuildEmptyTable(t *testing.T) {
	enc, err := dataset.Build(&dataset.Table{Columns: []string{"id", "a", "c"}})
	require.NoError(t, err)

	assert.Empty(t, enc.X)
	assert.Empty(t, enc.Y)
	assert.Equal(t, 0, enc.InvMapY.Len())
}

func TestEncodeWithUsesTrainingCodes(t *testing.T) {
	train, err := dataset.Build(weatherTable())
	require.NoError(t, err)

	test := &dataset.Table{
		Columns: []string{"id", "outlook", "wind", "play"},
		Rows: [][]string{
			{"a", "overcast", "strong", "yes"},
			{"b", "snow", "weak", "maybe"},
			{"c", "sunny", "NA", "no"},
		},
	}

	enc, err := dataset.EncodeWith(train, test)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{2, 1}, {dataset.Unknown, 0}, {0, 2}}, enc.X)
	assert.Equal(t, []int{1, dataset.Unknown, 0}, enc.Y)
	assert.Equal(t, train.InvMaps, enc.InvMaps)
	assert.Equal(t, train.InvMapY, enc.InvMapY)
}

func TestEncodeWithExtraAttributes(t *testing.T) {
	train, err := dataset.Build(weatherTable())
	require.NoError(t, err)

	test := &dataset.Table{
		Columns: []string{"id", "outlook", "wind", "humidity", "play"},
		Rows:    [][]string{{"a", "rain", "weak", "high", "no"}},
	}

	enc, err := dataset.EncodeWith(train, test)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0, dataset.Unknown}}, enc.X)
}

func TestEncodeWithRejectsNarrowTables(t *testing.T) {
	train, err := dataset.Build(weatherTable())
	require.NoError(t, err)

	_, err = dataset.EncodeWith(train, &dataset.Table{Columns: []string{"id", "play"}})
	assert.True(t, errors.Is(err, dataset.ErrValidation))
}

func TestCodebookLookupAndDecode(t *testing.T) {
	book := dataset.Codebook{Values: []string{"a", "b"}}

	assert.Equal(t, 1, book.Lookup("b"))
	assert.Equal(t, dataset.Unknown, book.Lookup("z"))

	v, ok := book.Decode(0)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = book.Decode(dataset.Unknown)
	assert.False(t, ok)
}

func TestValidateDetectsUnmappedCodes(t *testing.T) {
	enc, err := dataset.Build(weatherTable())
	require.NoError(t, err)

	enc.X[0][1] = 9
	assert.True(t, errors.Is(enc.Validate(), dataset.ErrValidation))
}
