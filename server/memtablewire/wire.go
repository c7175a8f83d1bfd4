package memtablewire

import (
	"errors"

	"github.com/tuannm99/memtable/internal/query"
	"github.com/tuannm99/memtable/internal/table"
)

// QueryRequest is a single query statement.
type QueryRequest struct {
	ID    uint64 `json:"id"`
	Query string `json:"query"`
}

// WireError carries a failure across the wire with its kind intact, so
// clients can rebuild the same typed error a local caller would get.
type WireError struct {
	Kind string `json:"kind"`
	Msg  string `json:"msg"`
}

const (
	// ErrKindQuery marks a *query.QueryError (syntax or validation).
	ErrKindQuery = "query"
	// ErrKindInternal marks anything else.
	ErrKindInternal = "internal"
)

// EncodeError classifies err into a WireError envelope.
func EncodeError(err error) *WireError {
	var qe *query.QueryError
	if errors.As(err, &qe) {
		return &WireError{Kind: ErrKindQuery, Msg: qe.Msg}
	}
	return &WireError{Kind: ErrKindInternal, Msg: err.Error()}
}

// Decode turns the envelope back into the typed error it encoded.
func (e *WireError) Decode() error {
	if e == nil {
		return nil
	}
	if e.Kind == ErrKindQuery {
		return query.Errorf("%s", e.Msg)
	}
	return errors.New(e.Msg)
}

// QueryResponse is the response for a request ID. Exactly one of
// Result and Err is set.
type QueryResponse struct {
	ID     uint64        `json:"id"`
	Result *table.Result `json:"result,omitempty"`
	Err    *WireError    `json:"error,omitempty"`
}
