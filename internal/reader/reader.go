// Package reader turns raw tabular text into typed records. The format
// is CSV with a mandatory header row; the header defines the column set
// for every following row.
package reader

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/tuannm99/memtable/internal/record"
	"github.com/tuannm99/memtable/internal/value"
)

// Read parses the whole text blob. It returns the header columns in
// file order and one record per data row. Any parse failure (ragged
// rows, bad quoting, missing header) surfaces as *record.DataError.
func Read(text string) ([]string, []record.Record, error) {
	r := csv.NewReader(strings.NewReader(text))

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, &record.DataError{Msg: fmt.Sprintf("malformed table: %v", err)}
	}
	if len(rows) == 0 {
		return nil, nil, &record.DataError{Msg: "missing header row"}
	}

	columns := rows[0]
	records := make([]record.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record.Record, len(columns))
		for i, col := range columns {
			rec[col] = classify(row[i])
		}
		records = append(records, rec)
	}

	return columns, records, nil
}

// classify types a cell: a non-empty run of decimal digits is an
// integer, everything else (including "-5" and "") is text.
func classify(cell string) value.Value {
	if !isDigits(cell) {
		return value.Text(cell)
	}
	n, err := strconv.ParseInt(cell, 10, 64)
	if err != nil {
		// digits but overflows int64; keep it as text
		return value.Text(cell)
	}
	return value.Int(n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
