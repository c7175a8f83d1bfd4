package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/memtable/internal/value"
)

func TestInfer(t *testing.T) {
	records := []Record{
		{"title": value.Text("Dune"), "year": value.Int(1965)},
		{"title": value.Text("Hyperion"), "year": value.Int(1989)},
	}

	s, err := Infer([]string{"title", "year"}, records)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "year"}, s.Columns)
	assert.Equal(t, 2, s.NumCols())

	k, ok := s.Kind("title")
	require.True(t, ok)
	assert.Equal(t, value.KindText, k)

	k, ok = s.Kind("year")
	require.True(t, ok)
	assert.Equal(t, value.KindInt, k)

	_, ok = s.Kind("missing")
	assert.False(t, ok)
}

func TestInfer_MixedTypes(t *testing.T) {
	records := []Record{
		{"year": value.Int(1965)},
		{"year": value.Text("unknown")},
	}

	_, err := Infer([]string{"year"}, records)
	require.Error(t, err)

	var de *DataError
	require.True(t, errors.As(err, &de), "want *DataError, got %T", err)
	assert.Equal(t, "mixed types in column year", de.Msg)
}

func TestInfer_NoRows(t *testing.T) {
	_, err := Infer([]string{"a"}, nil)
	require.Error(t, err)

	var de *DataError
	require.True(t, errors.As(err, &de), "want *DataError, got %T", err)
	assert.Equal(t, "no rows", de.Msg)
}
