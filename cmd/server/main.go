package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tuannm99/memtable/internal"
	"github.com/tuannm99/memtable/internal/logging"
	"github.com/tuannm99/memtable/internal/table"
	"github.com/tuannm99/memtable/server/memtablewire"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to yaml config (overrides other flags)")
		dataFile = flag.String("data", "", "CSV file to load")
		port     = flag.Int("port", 8877, "tcp port to listen on")
		debug    = flag.Bool("debug", false, "debug logging")
		seqURL   = flag.String("seq", "", "Seq ingestion endpoint (optional)")
	)
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := internal.LoadConfig(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		if cfg.Data.File != "" {
			*dataFile = cfg.Data.File
		}
		if cfg.Server.Port != 0 {
			*port = cfg.Server.Port
		}
		*debug = cfg.Server.Debug
		if cfg.Logging.SeqURL != "" {
			*seqURL = cfg.Logging.SeqURL
		}
	}

	if *dataFile == "" {
		fmt.Fprintln(os.Stderr, "missing -data <file> (or data.file in config)")
		os.Exit(1)
	}

	logger, closeLogs := logging.Setup(*seqURL, *debug)
	defer closeLogs()

	raw, err := os.ReadFile(*dataFile)
	if err != nil {
		logger.Error("read data file", slog.String("file", *dataFile), slog.Any("error", err))
		os.Exit(1)
	}

	t, err := table.Load(string(raw))
	if err != nil {
		logger.Error("load table", slog.String("file", *dataFile), slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("table loaded",
		slog.String("file", *dataFile),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.Schema().NumCols()))

	if err := memtablewire.Run(memtablewire.ServerConfig{
		Addr:   fmt.Sprintf(":%d", *port),
		Table:  t,
		Logger: logger,
	}); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
