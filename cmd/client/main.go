package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tuannm99/memtable/internal/table"
	"github.com/tuannm99/memtable/tableclient"
)

func printResult(res *table.Result) {
	cols := res.Columns
	rows := res.Rows

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, c := range cols {
			if s := row[c].String(); len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	printRow := func(values []string) {
		for i := range cols {
			if i > 0 {
				fmt.Print(" | ")
			}
			fmt.Print(padRight(values[i], widths[i]))
		}
		fmt.Println()
	}

	printRow(cols)

	for i := range cols {
		if i > 0 {
			fmt.Print("-+-")
		}
		fmt.Print(strings.Repeat("-", widths[i]))
	}
	fmt.Println()

	for _, row := range rows {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = row[c].String()
		}
		printRow(out)
	}

	fmt.Printf("(%d rows)\n", len(rows))
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "\\") ||
		line == "quit" || line == "exit"
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".memtable_history"
	}
	return filepath.Join(home, ".memtable_history")
}

func main() {
	var (
		addr     = flag.String("addr", "127.0.0.1:8877", "server address")
		timeout  = flag.Duration("timeout", 3*time.Second, "dial timeout")
		histPath = flag.String("history", defaultHistoryPath(), "history file path")
		histMax  = flag.Int("history-max", 2000, "max history entries kept")
		oneShot  = flag.String("c", "", "execute one query and exit")
	)
	flag.Parse()

	cli, err := tableclient.Dial(*addr, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cli.Close() }()

	// one-shot mode
	if strings.TrimSpace(*oneShot) != "" {
		res, err := cli.Query(*oneShot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		printResult(res)
		return
	}

	// queries are single-line, so readline's own history file is all
	// the persistence the REPL needs
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "memtable> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryFile:     *histPath,
		HistoryLimit:    *histMax,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("connected to %s\n", *addr)
	fmt.Println("type \\help for help")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println("^C")
			continue
		}
		if err != nil {
			// EOF
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isMetaCommand(line) {
			switch line {
			case "\\q", "quit", "exit":
				return
			case "\\help":
				fmt.Println(`meta commands:
  \q | quit | exit       quit
  \help                  show help

query:
  PROJECT <col>[, <col>]* [FILTER <col> (=|>) (<"string">|<integer>)]`)
			default:
				fmt.Printf("unknown command: %s\n", line)
			}
			continue
		}

		res, err := cli.Query(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		printResult(res)
	}
}
