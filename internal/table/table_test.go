package table

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/memtable/internal/query"
	"github.com/tuannm99/memtable/internal/record"
	"github.com/tuannm99/memtable/internal/value"
)

const booksCSV = "title,author,year\n" +
	"A,X,2000\n" +
	"B,X,2010\n"

func mustLoad(t *testing.T, text string) *Table {
	t.Helper()
	tbl, err := Load(text)
	require.NoError(t, err)
	return tbl
}

func titles(rows []record.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["title"].Text()
	}
	return out
}

func TestLoad(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"title", "author", "year"}, tbl.Schema().Columns)

	k, ok := tbl.Schema().Kind("year")
	require.True(t, ok)
	assert.Equal(t, value.KindInt, k)
}

func TestLoad_NoRows(t *testing.T) {
	_, err := Load("title,author,year\n")
	require.Error(t, err)

	var de *record.DataError
	require.True(t, errors.As(err, &de), "want *DataError, got %T", err)
	assert.Equal(t, "no rows", de.Msg)
}

func TestLoad_MixedColumn(t *testing.T) {
	_, err := Load("title,year\nDune,1965\nHyperion,unknown\n")
	require.Error(t, err)

	var de *record.DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "mixed types in column year", de.Msg)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load("title,year\nDune,1965,extra\n")
	require.Error(t, err)

	var de *record.DataError
	require.True(t, errors.As(err, &de))
}

func TestQuery_Project(t *testing.T) {
	tbl := mustLoad(t, "title,year\nDune,1965\n")

	res, err := tbl.Query("PROJECT title")
	require.NoError(t, err)

	assert.Equal(t, []string{"title"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, record.Record{"title": value.Text("Dune")}, res.Rows[0])
}

func TestQuery_FilterEqual(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	res, err := tbl.Query(`PROJECT title FILTER author = "X"`)
	require.NoError(t, err)

	// both rows share author "X": load order preserved among ties
	assert.Equal(t, []string{"A", "B"}, titles(res.Rows))
	for _, row := range res.Rows {
		assert.Len(t, row, 1)
	}
}

func TestQuery_FilterGreaterThan(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	res, err := tbl.Query("PROJECT title FILTER year > 2005")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, titles(res.Rows))
}

func TestQuery_FilterNoMatch(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	res, err := tbl.Query("PROJECT title FILTER year > 2050")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, []string{"title"}, res.Columns)
}

func TestQuery_NoFilterKeepsLoadOrder(t *testing.T) {
	tbl := mustLoad(t, "title,year\nC,3\nA,1\nB,2\n")

	res, err := tbl.Query("PROJECT title")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, titles(res.Rows))
}

func TestQuery_FilterOrderIsColumnOrder(t *testing.T) {
	tbl := mustLoad(t, "title,year\nC,3\nA,1\nB,2\n")

	res, err := tbl.Query("PROJECT title FILTER year > 0")
	require.NoError(t, err)
	// ascending by year, not load order
	assert.Equal(t, []string{"A", "B", "C"}, titles(res.Rows))
}

func TestQuery_UnknownColumn(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	_, err := tbl.Query("PROJECT unknown")
	require.Error(t, err)

	var qe *query.QueryError
	require.True(t, errors.As(err, &qe), "want *QueryError, got %T", err)
	assert.Equal(t, "unknown column: unknown", qe.Msg)

	_, err = tbl.Query("PROJECT title FILTER unknown = 1")
	require.Error(t, err)
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "unknown column: unknown", qe.Msg)
}

func TestQuery_OperandTypeMismatch(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	// title is TEXT, operand is INT: must fail at validation, not panic
	// inside the index search.
	_, err := tbl.Query("PROJECT title FILTER title = 2000")
	require.Error(t, err)

	var qe *query.QueryError
	require.True(t, errors.As(err, &qe), "want *QueryError, got %T", err)
	assert.Equal(t, "invalid value type: 2000", qe.Msg)

	_, err = tbl.Query(`PROJECT title FILTER year > "2000"`)
	require.Error(t, err)
	require.True(t, errors.As(err, &qe))
}

func TestQuery_SyntaxError(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	_, err := tbl.Query("SELECT * FROM books")
	require.Error(t, err)

	var qe *query.QueryError
	require.True(t, errors.As(err, &qe))

	// the table stays usable after a failed query
	res, err := tbl.Query("PROJECT title")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestQuery_DuplicateProjection(t *testing.T) {
	tbl := mustLoad(t, "title,year\nDune,1965\n")

	res, err := tbl.Query("PROJECT title, title")
	require.NoError(t, err)

	// the column list echoes the repeat; the record holds the key once
	assert.Equal(t, []string{"title", "title"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Len(t, res.Rows[0], 1)
	assert.Equal(t, value.Text("Dune"), res.Rows[0]["title"])
}

func TestQuery_SingleRecordBoundary(t *testing.T) {
	tbl := mustLoad(t, "title,year\nDune,1965\n")

	res, err := tbl.Query("PROJECT title FILTER year = 1965")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, titles(res.Rows))

	res, err = tbl.Query("PROJECT title FILTER year = 1964")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)

	res, err = tbl.Query("PROJECT title FILTER year > 1965")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestQuery_Idempotent(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	first, err := tbl.Query(`PROJECT title, year FILTER author = "X"`)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := tbl.Query(`PROJECT title, year FILTER author = "X"`)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuery_Concurrent(t *testing.T) {
	tbl := mustLoad(t, booksCSV)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				res, err := tbl.Query("PROJECT title FILTER year > 2005")
				assert.NoError(t, err)
				assert.Equal(t, []string{"B"}, titles(res.Rows))
			}
		}()
	}
	wg.Wait()
}
