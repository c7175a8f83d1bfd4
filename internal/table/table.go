// Package table implements the in-memory single-table database: load,
// schema inference, per-column sorted indexes, and query execution.
package table

import (
	"github.com/tuannm99/memtable/internal/query"
	"github.com/tuannm99/memtable/internal/reader"
	"github.com/tuannm99/memtable/internal/record"
)

// Table owns the schema, the canonical record store and one sorted
// index per column. It follows construct-and-freeze: Load either
// returns a fully built table or an error, and nothing mutates the
// table afterwards. Query is therefore safe to call from any number
// of goroutines without locking.
type Table struct {
	schema  record.Schema
	records []record.Record
	indexes map[string]*columnIndex
}

// Load builds a table from raw tabular text. Failures (malformed text,
// zero data rows, a column mixing variants) come back as
// *record.DataError and leave no partial table behind.
func Load(text string) (*Table, error) {
	columns, records, err := reader.Read(text)
	if err != nil {
		return nil, err
	}

	schema, err := record.Infer(columns, records)
	if err != nil {
		return nil, err
	}

	indexes := make(map[string]*columnIndex, len(columns))
	for _, col := range columns {
		indexes[col] = buildIndex(col, records)
	}

	return &Table{
		schema:  schema,
		records: records,
		indexes: indexes,
	}, nil
}

func (t *Table) Schema() record.Schema { return t.schema }

func (t *Table) NumRows() int { return len(t.records) }

// Query runs one statement end to end: parse, validate, filter,
// project. Syntax and semantic failures come back as
// *query.QueryError; the table stays usable either way.
func (t *Table) Query(text string) (*Result, error) {
	q, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := t.validate(q); err != nil {
		return nil, err
	}
	return t.execute(q), nil
}
