package record

import (
	"fmt"

	"github.com/tuannm99/memtable/internal/value"
)

// Record is a single row: column name -> value.
// Column order lives in the Schema, not here.
type Record map[string]value.Value

func (r Record) Copy() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// DataError reports a problem with the source data itself: malformed
// text, an empty record set, or a column mixing variants. It is only
// ever raised while a table is being constructed.
type DataError struct {
	Msg string
}

func (e *DataError) Error() string { return e.Msg }

func dataErrorf(format string, args ...any) *DataError {
	return &DataError{Msg: fmt.Sprintf(format, args...)}
}
