package query

import (
	"fmt"

	"github.com/tuannm99/memtable/internal/value"
)

// Op is a filter operator.
type Op uint8

const (
	OpEqual Op = iota
	OpGreaterThan
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpGreaterThan:
		return ">"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Filter restricts which records reach projection: a single
// column/operator/operand triple.
type Filter struct {
	Column  string
	Op      Op
	Operand value.Value
}

// Query is a parsed statement: the projection list (in request order,
// repeats allowed) plus at most one filter.
type Query struct {
	Columns []string
	Filter  *Filter
}

// QueryError covers everything wrong with a query: syntax errors from
// the parser and semantic errors from validation (unknown column,
// operand/column type mismatch). The table itself is untouched and
// stays usable.
type QueryError struct {
	Msg string
}

func (e *QueryError) Error() string { return e.Msg }

// Errorf builds a QueryError; the validation layer uses it too.
func Errorf(format string, args ...any) *QueryError {
	return &QueryError{Msg: fmt.Sprintf(format, args...)}
}
