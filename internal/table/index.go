package table

import (
	"sort"

	"github.com/tuannm99/memtable/internal/record"
	"github.com/tuannm99/memtable/internal/value"
)

// columnIndex is a precomputed sorted view over one column. It holds
// positions into the table's canonical record store, never copies of
// the records, and is immutable once built.
//
// The sort is stable: rows with equal values keep their load order.
type columnIndex struct {
	column  string
	records []record.Record // the table's backing store, read-only here
	pos     []int           // ascending by records[pos[i]][column]
}

func buildIndex(column string, records []record.Record) *columnIndex {
	pos := make([]int, len(records))
	for i := range pos {
		pos[i] = i
	}
	sort.SliceStable(pos, func(a, b int) bool {
		return records[pos[a]][column].Compare(records[pos[b]][column]) < 0
	})
	return &columnIndex{column: column, records: records, pos: pos}
}

// lowerBound returns the first sorted position whose value is >= v.
func (ix *columnIndex) lowerBound(v value.Value) int {
	return sort.Search(len(ix.pos), func(i int) bool {
		return ix.records[ix.pos[i]][ix.column].Compare(v) >= 0
	})
}

// upperBound returns the first sorted position whose value is > v.
func (ix *columnIndex) upperBound(v value.Value) int {
	return sort.Search(len(ix.pos), func(i int) bool {
		return ix.records[ix.pos[i]][ix.column].Compare(v) > 0
	})
}

// searchEqual returns every record whose value equals v, in sorted
// order (load order among the ties). Two binary searches plus a
// contiguous slice: O(log n + k).
//
// The operand's variant must already match the column's declared kind;
// validation guarantees that before we get here.
func (ix *columnIndex) searchEqual(v value.Value) []record.Record {
	lo, hi := ix.lowerBound(v), ix.upperBound(v)
	return ix.collect(lo, hi)
}

// searchGreaterThan returns every record strictly above v, ascending
// by this column (not load order).
func (ix *columnIndex) searchGreaterThan(v value.Value) []record.Record {
	return ix.collect(ix.upperBound(v), len(ix.pos))
}

func (ix *columnIndex) collect(lo, hi int) []record.Record {
	if lo >= hi {
		return nil
	}
	out := make([]record.Record, 0, hi-lo)
	for _, p := range ix.pos[lo:hi] {
		out = append(out, ix.records[p])
	}
	return out
}
