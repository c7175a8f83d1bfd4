// Package tableclient is a synchronous client for the memtable wire
// protocol. Failures that were typed on the server come back typed
// here too: a rejected query surfaces as *query.QueryError, exactly as
// if the table were local.
package tableclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tuannm99/memtable/internal/table"
	"github.com/tuannm99/memtable/server/memtablewire"
)

// Client owns one connection. Query may be called concurrently; calls
// serialize over the connection in request order.
type Client struct {
	mu      sync.Mutex
	conn    net.Conn
	nextID  uint64
	timeout time.Duration
}

// Dial connects to a memtable server. timeout covers the dial and, if
// non-zero, each subsequent request/response exchange.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Query runs one statement against the server's table.
func (c *Client) Query(q string) (*table.Result, error) {
	return c.QueryContext(context.Background(), q)
}

func (c *Client) QueryContext(ctx context.Context, q string) (*table.Result, error) {
	resp, err := c.roundTrip(ctx, q)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err.Decode()
	}
	return resp.Result, nil
}

// roundTrip sends one request frame and reads its response frame,
// holding the connection for the whole exchange.
func (c *Client) roundTrip(ctx context.Context, q string) (*memtablewire.QueryResponse, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("tableclient: nil client")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req := memtablewire.QueryRequest{ID: c.nextID, Query: q}

	deadline := time.Time{}
	if dl, ok := ctx.Deadline(); ok {
		deadline = dl
	} else if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if err := memtablewire.WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp memtablewire.QueryResponse
	if err := memtablewire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}

	if resp.ID != req.ID {
		return nil, fmt.Errorf("tableclient: response id mismatch: got=%d want=%d", resp.ID, req.ID)
	}
	return &resp, nil
}
