package memtablewire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/tuannm99/memtable/internal/table"
)

type ServerConfig struct {
	Addr   string
	Table  *table.Table
	Logger *slog.Logger
}

// Run listens on sc.Addr and serves until SIGINT/SIGTERM.
func Run(sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, ln, sc.Table, sc.Logger)
}

// Serve accepts connections on ln until ctx is cancelled. Every
// connection shares the one immutable table, so no coordination is
// needed between sessions.
func Serve(ctx context.Context, ln net.Listener, t *table.Table, log *slog.Logger) error {
	defer func() { _ = ln.Close() }()

	if log == nil {
		log = slog.Default()
	}

	log.Info("memtable tcp server listening",
		slog.String("addr", ln.Addr().String()),
		slog.Int("rows", t.NumRows()))

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			log.Warn("accept failed", slog.Any("error", err))
			continue
		}
		go handleConn(ctx, conn, t, log)
	}
}

func handleConn(ctx context.Context, conn net.Conn, t *table.Table, log *slog.Logger) {
	defer func() { _ = conn.Close() }()

	// No global deadline; queries are CPU-bound and short.
	_ = conn.SetDeadline(time.Time{})

	session := uuid.NewString()
	log = log.With(slog.String("session", session), slog.String("remote", conn.RemoteAddr().String()))
	log.Debug("session opened")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req QueryRequest
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or bad frame.
			log.Debug("session closed", slog.Any("error", err))
			return
		}

		res, err := t.Query(req.Query)
		if err != nil {
			log.Debug("query failed",
				slog.Uint64("id", req.ID),
				slog.String("error", err.Error()))
			_ = WriteFrame(conn, QueryResponse{
				ID:  req.ID,
				Err: EncodeError(err),
			})
			continue
		}

		log.Debug("query ok",
			slog.Uint64("id", req.ID),
			slog.Int("rows", len(res.Rows)))
		_ = WriteFrame(conn, QueryResponse{
			ID:     req.ID,
			Result: res,
		})
	}
}
