package memtablewire_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/memtable/internal/query"
	"github.com/tuannm99/memtable/internal/table"
	"github.com/tuannm99/memtable/internal/value"
	"github.com/tuannm99/memtable/server/memtablewire"
	"github.com/tuannm99/memtable/tableclient"
)

const booksCSV = "title,author,year\n" +
	"A,X,2000\n" +
	"B,X,2010\n"

// startServer serves a table on a loopback port and tears everything
// down with the test.
func startServer(t *testing.T) string {
	t.Helper()

	tbl, err := table.Load(booksCSV)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = memtablewire.Serve(ctx, ln, tbl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return ln.Addr().String()
}

func TestServe_QueryRoundTrip(t *testing.T) {
	addr := startServer(t)

	cli, err := tableclient.Dial(addr, 3*time.Second)
	require.NoError(t, err)
	defer func() { _ = cli.Close() }()

	res, err := cli.Query("PROJECT title FILTER year > 2005")
	require.NoError(t, err)

	assert.Equal(t, []string{"title"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, value.Text("B"), res.Rows[0]["title"])
}

func TestServe_QueryErrorIsTypedAcrossTheWire(t *testing.T) {
	addr := startServer(t)

	cli, err := tableclient.Dial(addr, 3*time.Second)
	require.NoError(t, err)
	defer func() { _ = cli.Close() }()

	_, err = cli.Query("PROJECT nope")
	require.Error(t, err)

	var qe *query.QueryError
	require.True(t, errors.As(err, &qe), "want *QueryError, got %T", err)
	assert.Equal(t, "unknown column: nope", qe.Msg)

	// syntax errors come back typed too
	_, err = cli.Query("SELECT * FROM books")
	require.Error(t, err)
	require.True(t, errors.As(err, &qe))

	// and the session keeps working after failures
	res, err := cli.Query("PROJECT title")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestServe_SequentialRequestsKeepIDsMatched(t *testing.T) {
	addr := startServer(t)

	cli, err := tableclient.Dial(addr, 3*time.Second)
	require.NoError(t, err)
	defer func() { _ = cli.Close() }()

	for i := 0; i < 10; i++ {
		res, err := cli.Query(`PROJECT title FILTER author = "X"`)
		require.NoError(t, err)
		require.Len(t, res.Rows, 2)
	}
}
