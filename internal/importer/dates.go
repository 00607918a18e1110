package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patient registers originate as scanned paper documents run through OCR
// before they reach a spreadsheet, so date cells arrive with misread glyphs
// ("Jul25,2025", "Aug0#,2025", "0ct 3, 2024"). RecoverDate repairs what it
// can at the character level and rejects the rest: a dropped date is
// recoverable later, a wrongly guessed one is not.

const (
	minYear = 1900
	maxYear = 2100
)

// glyphSubstitutions maps commonly OCR-confused characters to digits. The
// list is ordered and applied first-match per character; order is pinned by
// golden tests because several letters are plausible readings of more than
// one digit.
var glyphSubstitutions = []struct {
	From rune
	To   rune
}{
	{'O', '0'}, {'o', '0'}, {'D', '0'},
	{'l', '1'}, {'I', '1'}, {'i', '1'},
	{'t', '1'}, {'T', '1'}, {'j', '1'}, {'J', '1'},
	{'Z', '2'}, {'z', '2'},
	{'a', '4'}, {'A', '4'},
	{'s', '5'}, {'S', '5'},
	{'b', '6'},
	{'?', '7'},
	{'B', '8'}, {'E', '8'}, {'e', '8'}, {'#', '8'},
	{'g', '9'}, {'Y', '9'}, {'y', '9'}, {'q', '9'}, {'Q', '9'},
}

// monthAliases resolves month tokens to two-digit months. Beyond the
// standard abbreviations it carries OCR misreadings observed in real
// registers. The bare prefix "ju" resolves to June.
var monthAliases = map[string]string{
	"january": "01", "jan": "01", "jen": "01", "janu": "01",
	"february": "02", "feb": "02", "fe6": "02", "fb": "02",
	"march": "03", "mar": "03", "mav": "03", "ma": "03",
	"april": "04", "apr": "04", "apl": "04", "ap": "04",
	"may": "05",
	"june": "06", "jun": "06", "ju": "06",
	"july": "07", "jul": "07", "jut": "07", "ju1": "07", "jui": "07",
	"august": "08", "aug": "08", "avg": "08", "au": "08",
	"september": "09", "sept": "09", "sep": "09", "se": "09",
	"october": "10", "oct": "10", "0ct": "10", "oc": "10",
	"november": "11", "nov": "11", "n0v": "11", "no": "11",
	"december": "12", "dec": "12", "oec": "12", "dez": "12", "de": "12",
}

// Textual date patterns, most to least strict. All operate on trimmed input
// with internal whitespace collapsed to single spaces. Month tokens admit a
// leading zero so that misreadings like "0ct" still resolve.
var (
	// "Jan 31, 2026" / "Jan 31 2026"
	reSpacedDate = regexp.MustCompile(`^([0#]?[A-Za-z]+) (\d{1,2}),? ?(\d{4})$`)
	// "Jul25,2025", no space between month token and day
	reCompactDate = regexp.MustCompile(`^([A-Za-z]{2,9})(\d{1,2}), ?(\d{4})$`)

	// reMonthPrefix extracts the month token from the noisy pattern's left
	// half ("Aug0#" -> "Aug", "0ct3" -> "0ct").
	reMonthPrefix = regexp.MustCompile(`^[0#]?[A-Za-z]+`)
	// reNoiseSeg is the charset allowed in OCR-polluted day/year segments.
	reNoiseSeg = regexp.MustCompile(`^[0-9A-Za-z#?]+$`)

	reISODate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

	reWhitespace = regexp.MustCompile(`\s+`)
	// A run of 2+ letters after an optional leading 3-4 letter month prefix
	// means the string is prose, not a date; the generic fallback refuses it.
	reTrailingLetters = regexp.MustCompile(`^[A-Za-z]{3,4}`)
	reLetterRun       = regexp.MustCompile(`[A-Za-z]{2,}`)
)

// genericLayouts are tried as a last resort for strings that survived the
// prose check.
var genericLayouts = []string{
	"Jan 2, 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006-1-2",
	time.RFC3339,
}

// RecoverDate converts a raw cell value into a canonical YYYY-MM-DD string.
// It accepts time.Time, Excel serial numbers (float64/int), and strings,
// potentially OCR-corrupted. The second return value is false when no valid
// date could be recovered; RecoverDate never panics and never returns a
// partially repaired string.
func RecoverDate(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case time.Time:
		if t.IsZero() {
			return "", false
		}
		return formatIfInRange(t)
	case float64:
		return fromExcelSerial(t)
	case int:
		return fromExcelSerial(float64(t))
	case string:
		return recoverDateString(t)
	default:
		return "", false
	}
}

func recoverDateString(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	// Placeholders meaning "no value".
	if s == "" || s == "-" || s == "—" {
		return "", false
	}

	// Stray slashes and pipes at the string boundary are common OCR artifacts
	// from page edges and table rules.
	s = strings.Trim(s, "/|")
	s = strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
	if s == "" {
		return "", false
	}

	if month, day, year, ok := matchTextual(s); ok {
		if iso, ok := assembleDate(month, day, year); ok {
			return iso, true
		}
		// A matched textual pattern that fails repair is final: retrying a
		// looser stage on known-corrupt text guesses rather than recovers.
		return "", false
	}

	if m := reISODate.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if year >= minYear && year <= maxYear && month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return s, true
		}
		return "", false
	}

	return genericParse(s)
}

// matchTextual tries the three textual date patterns in order of
// strictness and returns the raw month token, day segment, and year
// segment on a hit.
func matchTextual(s string) (month, day, year string, ok bool) {
	if m := reSpacedDate.FindStringSubmatch(s); m != nil {
		return m[1], m[2], m[3], true
	}
	if m := reCompactDate.FindStringSubmatch(s); m != nil {
		return m[1], m[2], m[3], true
	}
	return matchNoisy(s)
}

// matchNoisy handles "<letters><day-with-OCR-noise>,<year>" where the day
// segment may contain stray letters or symbols mixed with digits, e.g.
// "Aug0#,2025" or "Sep1?, 2022". The split is structural: everything after
// the last comma is the year, the leading letter run is the month token,
// the remainder between them is the day.
func matchNoisy(s string) (month, day, year string, ok bool) {
	idx := strings.LastIndex(s, ",")
	if idx <= 0 {
		return "", "", "", false
	}

	year = strings.TrimSpace(s[idx+1:])
	left := strings.TrimSpace(s[:idx])

	month = reMonthPrefix.FindString(left)
	if month == "" {
		return "", "", "", false
	}
	day = strings.TrimSpace(left[len(month):])

	if day == "" || len(day) > 4 || len(year) != 4 {
		return "", "", "", false
	}
	if !reNoiseSeg.MatchString(day) || !reNoiseSeg.MatchString(year) {
		return "", "", "", false
	}
	return month, day, year, true
}

// assembleDate repairs the day and year segments, resolves the month token,
// validates ranges, and emits YYYY-MM-DD.
func assembleDate(monthToken, daySeg, yearSeg string) (string, bool) {
	month, ok := resolveMonth(monthToken)
	if !ok {
		return "", false
	}

	dayStr := RepairDigits(daySeg)
	yearStr := RepairDigits(yearSeg)
	if dayStr == "" || len(yearStr) != 4 {
		return "", false
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < minYear || year > maxYear {
		return "", false
	}

	var b strings.Builder
	b.WriteString(yearStr)
	b.WriteByte('-')
	b.WriteString(month)
	b.WriteByte('-')
	if day < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(day))
	return b.String(), true
}

// RepairDigits applies the OCR glyph substitution table to s and drops any
// character that is still not a digit. Exported so the table's behavior can
// be pinned by tests independently of the date control flow.
func RepairDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		// Anything not repairable to a digit is dropped.
		for _, sub := range glyphSubstitutions {
			if r == sub.From {
				b.WriteRune(sub.To)
				break
			}
		}
	}
	return b.String()
}

// resolveMonth progressively shortens the token from full length down to a
// 2-character prefix and accepts the first alias-table hit.
func resolveMonth(token string) (string, bool) {
	t := strings.ToLower(token)
	for l := len(t); l >= 2; l-- {
		if m, ok := monthAliases[t[:l]]; ok {
			return m, true
		}
	}
	return "", false
}

// genericParse is the last-resort stage: generic calendar-string parsing,
// refused outright for strings that look like prose.
func genericParse(s string) (string, bool) {
	rest := reTrailingLetters.ReplaceAllString(s, "")
	if reLetterRun.MatchString(rest) {
		return "", false
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatIfInRange(t)
		}
	}
	return "", false
}

func formatIfInRange(t time.Time) (string, bool) {
	y := t.Year()
	if y < minYear || y > maxYear {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// excelEpoch is day zero of the 1900 date system (accounting for the
// spreadsheet leap-year bug, serial 1 is 1899-12-31).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// fromExcelSerial converts a spreadsheet serial day number into a date.
// Serials below 61 predate the phantom 1900-02-29 and are not worth the
// special casing: no hospital register predates 1950.
func fromExcelSerial(serial float64) (string, bool) {
	if serial < 61 || serial > 200000 {
		return "", false
	}
	t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	return formatIfInRange(t)
}
