package query

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tuannm99/memtable/internal/value"
)

// Parse parses a single statement:
//
//	PROJECT <col>[, <col>]* [FILTER <col> (=|>) (<quoted-string>|<integer>)]
//
// Keywords are case-insensitive, identifiers are not.
func Parse(text string) (*Query, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, Errorf("empty query")
	}

	up := strings.ToUpper(s)
	if up != "PROJECT" && !strings.HasPrefix(up, "PROJECT ") {
		return nil, Errorf("query must start with PROJECT")
	}

	rest := strings.TrimSpace(s[len("PROJECT"):])
	colsPart, filterPart := splitKeyword(rest, "FILTER")

	cols, err := parseColumns(colsPart)
	if err != nil {
		return nil, err
	}

	q := &Query{Columns: cols}

	if strings.TrimSpace(filterPart) != "" {
		f, err := parseFilter(filterPart)
		if err != nil {
			return nil, err
		}
		q.Filter = f
	}

	return q, nil
}

func parseColumns(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, Errorf("missing projection columns")
	}

	parts := strings.Split(s, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		col, err := parseIdent(p)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// parseFilter parses "<col> (=|>) <operand>". Identifiers cannot
// contain '=' or '>', so the first occurrence of either splits the
// clause unambiguously.
func parseFilter(s string) (*Filter, error) {
	s = strings.TrimSpace(s)

	idx := strings.IndexAny(s, "=>")
	if idx < 0 {
		return nil, Errorf("filter needs an operator (= or >)")
	}

	col, err := parseIdent(s[:idx])
	if err != nil {
		return nil, err
	}

	op := OpEqual
	if s[idx] == '>' {
		op = OpGreaterThan
	}

	operand, err := parseOperand(strings.TrimSpace(s[idx+1:]))
	if err != nil {
		return nil, err
	}

	return &Filter{Column: col, Op: op, Operand: operand}, nil
}

// parseOperand accepts a double-quoted string or a bare digit run.
func parseOperand(s string) (value.Value, error) {
	if s == "" {
		return value.Value{}, Errorf("filter needs an operand")
	}

	if s[0] == '"' {
		if len(s) < 2 || s[len(s)-1] != '"' {
			return value.Value{}, Errorf("unterminated string operand: %s", s)
		}
		return value.Text(s[1 : len(s)-1]), nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return value.Value{}, Errorf("invalid operand: %s", s)
	}
	return value.Int(n), nil
}

// parseIdent validates a bare identifier (column name):
// first char letter or '_', rest letter/digit/'_', no spaces.
func parseIdent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Errorf("missing identifier")
	}

	if len(strings.Fields(s)) != 1 {
		return "", Errorf("invalid identifier %q", s)
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", Errorf("invalid identifier %q", s)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", Errorf("invalid identifier %q", s)
		}
	}

	return s, nil
}

// splitKeyword splits "X <keyword> Y" case-insensitively, requiring
// spaces around the keyword. If the keyword is absent => (s, "").
func splitKeyword(s, keyword string) (string, string) {
	up := strings.ToUpper(s)
	k := " " + strings.ToUpper(keyword) + " "
	idx := strings.Index(up, k)
	if idx < 0 {
		return s, ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(k):])
}
