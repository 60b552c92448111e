package parser

import "strings"

// Table is delimited text split into a header row and raw data rows.
// Rows are positionally aligned to Header and may be shorter or longer.
type Table struct {
	Header []string
	Rows   [][]string
}

// ParseRow splits one line of comma-delimited text into fields.
//
// A double quote toggles quoted mode, inside which commas are literal.
// Quotes are never part of the field and cannot be escaped, so `""` simply
// toggles twice. The result always has at least one element: an empty line
// yields [""].
func ParseRow(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	return append(fields, current.String())
}

// ParseTable splits exported spreadsheet text into a header and data rows.
// A leading UTF-8 BOM is dropped, CRLF endings are accepted and blank lines
// are skipped. Text without any non-blank line yields an empty Table.
func ParseTable(text string) Table {
	text = strings.TrimPrefix(text, "\ufeff")

	var t Table
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if t.Header == nil {
			t.Header = ParseRow(line)
			continue
		}
		t.Rows = append(t.Rows, ParseRow(line))
	}
	return t
}
