package importer

import (
	"fmt"
	"regexp"
	"strings"
)

// Row is a raw spreadsheet row keyed by header string. Values are kept
// loosely typed at the parse boundary only; nothing past the mapper sees a
// Row.
type Row map[string]interface{}

// reGeneratedHeader matches header names a spreadsheet library invents when
// the sheet has no real header row ("Column3", "Field2", "__EMPTY_1", "A",
// "B", ...).
var reGeneratedHeader = regexp.MustCompile(`^(?:Column_?\d+|Field_?\d+|__EMPTY(?:_\d+)?|[A-Z]{1,2}\d*|Unnamed: ?\d+)$`)

// ResolveField returns the value in row for the first matching header alias.
// Matching is two-pass: exact key match first, then case-insensitive match
// with dots and whitespace stripped from both sides. Returns false when no
// alias matches; the caller supplies the default.
func ResolveField(row Row, aliases ...string) (interface{}, bool) {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			return v, true
		}
	}
	for _, alias := range aliases {
		want := normalizeHeader(alias)
		for key, v := range row {
			if normalizeHeader(key) == want {
				return v, true
			}
		}
	}
	return nil, false
}

// ResolveString is ResolveField with string coercion and trimming.
func ResolveString(row Row, aliases ...string) (string, bool) {
	v, ok := ResolveField(row, aliases...)
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(coerceString(v))
	if s == "" {
		return "", false
	}
	return s, true
}

// normalizeHeader lowercases a header and strips dots, underscores and
// whitespace so
// "Visit ID", "visit_id" and "VisitID" style variants compare equal.
func normalizeHeader(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', ' ', '\t', ' ':
			return -1
		}
		return r
	}, s)
}

// IsGeneratedHeader reports whether a single header looks auto-generated.
func IsGeneratedHeader(h string) bool {
	return h == "" || reGeneratedHeader.MatchString(strings.TrimSpace(h))
}

// AllGeneratedHeaders reports whether every header in the list looks like a
// placeholder, meaning the sheet's real header row slid down into the data.
func AllGeneratedHeaders(headers []string) bool {
	if len(headers) == 0 {
		return false
	}
	for _, h := range headers {
		if !IsGeneratedHeader(h) {
			return false
		}
	}
	return true
}

// RemapWithHeaderRow treats the first row's values as the true header list
// and re-keys every subsequent row positionally against those values. Used
// when AllGeneratedHeaders detected a placeholder header row.
func RemapWithHeaderRow(headers []string, rows []Row) ([]string, []Row) {
	if len(rows) == 0 {
		return headers, rows
	}

	trueHeaders := make([]string, len(headers))
	first := rows[0]
	for i, placeholder := range headers {
		h := strings.TrimSpace(coerceString(first[placeholder]))
		if h == "" {
			h = fmt.Sprintf("Column%d", i+1)
		}
		trueHeaders[i] = h
	}

	remapped := make([]Row, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out := make(Row, len(trueHeaders))
		for i, placeholder := range headers {
			out[trueHeaders[i]] = row[placeholder]
		}
		remapped = append(remapped, out)
	}
	return trueHeaders, remapped
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
