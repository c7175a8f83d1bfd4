// One-shot runner: load a CSV file, run a single query, print the
// result. Handy for piping and for poking at data without a server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tuannm99/memtable/internal/query"
	"github.com/tuannm99/memtable/internal/record"
	"github.com/tuannm99/memtable/internal/table"
)

func main() {
	dataFile := flag.String("data", "", "CSV file to load")
	flag.Parse()

	if *dataFile == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: memtable -data <file> '<query>'")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*dataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}

	t, err := table.Load(string(raw))
	if err != nil {
		var de *record.DataError
		if errors.As(err, &de) {
			fmt.Fprintf(os.Stderr, "data error: %s\n", de.Msg)
		} else {
			fmt.Fprintf(os.Stderr, "load: %v\n", err)
		}
		os.Exit(1)
	}

	res, err := t.Query(flag.Arg(0))
	if err != nil {
		var qe *query.QueryError
		if errors.As(err, &qe) {
			fmt.Fprintf(os.Stderr, "query error: %s\n", qe.Msg)
		} else {
			fmt.Fprintf(os.Stderr, "query: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println(strings.Join(res.Columns, ","))
	for _, row := range res.Rows {
		cells := make([]string, len(res.Columns))
		for i, c := range res.Columns {
			cells[i] = row[c].String()
		}
		fmt.Println(strings.Join(cells, ","))
	}
}
