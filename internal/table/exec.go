package table

import (
	"github.com/tuannm99/memtable/internal/query"
	"github.com/tuannm99/memtable/internal/record"
)

// Result is what a query returns: the projection list as requested,
// and the projected records in filter-stage order.
type Result struct {
	Columns []string
	Rows    []record.Record
}

// validate checks a parsed query against the schema before any
// execution work: every projected column and the filter column must
// exist, and the filter operand's variant must match the column's
// declared kind. This is what makes the unchecked comparisons inside
// the index safe.
func (t *Table) validate(q *query.Query) error {
	for _, col := range q.Columns {
		if _, ok := t.schema.Kind(col); !ok {
			return query.Errorf("unknown column: %s", col)
		}
	}

	if f := q.Filter; f != nil {
		kind, ok := t.schema.Kind(f.Column)
		if !ok {
			return query.Errorf("unknown column: %s", f.Column)
		}
		if f.Operand.Kind() != kind {
			return query.Errorf("invalid value type: %s", f.Operand)
		}
	}

	return nil
}

// execute runs the two-stage pipeline: filter, then project.
// The query must already be validated.
func (t *Table) execute(q *query.Query) *Result {
	matched := t.filter(q.Filter)

	rows := make([]record.Record, 0, len(matched))
	for _, rec := range matched {
		rows = append(rows, project(rec, q.Columns))
	}

	cols := make([]string, len(q.Columns))
	copy(cols, q.Columns)

	return &Result{Columns: cols, Rows: rows}
}

// filter picks the surviving records. No filter means the full store
// in load order; otherwise the column index answers, in ascending
// column order (ties keep load order).
func (t *Table) filter(f *query.Filter) []record.Record {
	if f == nil {
		return t.records
	}

	ix := t.indexes[f.Column]
	switch f.Op {
	case query.OpEqual:
		return ix.searchEqual(f.Operand)
	default:
		return ix.searchGreaterThan(f.Operand)
	}
}

// project rebuilds a record with only the requested columns. A record
// cannot hold duplicate keys, so a repeated name is last-write-wins;
// the Columns list in the result still echoes every repeat.
func project(rec record.Record, columns []string) record.Record {
	out := make(record.Record, len(columns))
	for _, col := range columns {
		out[col] = rec[col]
	}
	return out
}
