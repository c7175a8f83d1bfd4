package record

import (
	"github.com/tuannm99/memtable/internal/value"
)

// Schema maps each column to its single allowed variant, in header order.
type Schema struct {
	Columns []string
	kinds   map[string]value.Kind
}

func (s Schema) NumCols() int { return len(s.Columns) }

// Kind returns the declared variant for a column, and whether the
// column exists at all.
func (s Schema) Kind(column string) (value.Kind, bool) {
	k, ok := s.kinds[column]
	return k, ok
}

// Infer derives the schema from the full record set. Columns come from
// the header (the key set shared by every record). A column must hold
// the same variant in every record, or the data is rejected. Zero rows
// is rejected as well: with no data there is nothing to infer from.
func Infer(columns []string, records []Record) (Schema, error) {
	if len(records) == 0 {
		return Schema{}, dataErrorf("no rows")
	}

	kinds := make(map[string]value.Kind, len(columns))
	for _, col := range columns {
		kind := records[0][col].Kind()
		for _, rec := range records[1:] {
			if rec[col].Kind() != kind {
				return Schema{}, dataErrorf("mixed types in column %s", col)
			}
		}
		kinds[col] = kind
	}

	return Schema{Columns: columns, kinds: kinds}, nil
}
