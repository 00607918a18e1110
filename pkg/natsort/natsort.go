// Package natsort implements natural-order string comparison: runs of digits
// embedded in a string are compared by numeric value rather than character by
// character, so "AAC.2" sorts before "AAC.10". Used to order accreditation
// document codes and SOP codes.
package natsort

import (
	"sort"
	"strings"
)

// Less reports whether a sorts before b in natural order. Comparison is
// case-insensitive on the letter segments.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Compare returns -1, 0, or +1 comparing a and b in natural order.
func Compare(a, b string) int {
	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		ca, cb := a[ia], b[ib]

		if isDigit(ca) && isDigit(cb) {
			// Compare the full digit runs numerically. Leading zeros are
			// skipped so "007" and "7" compare equal on value; ties fall
			// through to the rest of the string.
			sa, ea := digitRun(a, ia)
			sb, eb := digitRun(b, ib)
			if c := compareDigits(a[sa:ea], b[sb:eb]); c != 0 {
				return c
			}
			ia, ib = ea, eb
			continue
		}

		la, lb := lower(ca), lower(cb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		ia++
		ib++
	}

	switch {
	case ia < len(a):
		return 1
	case ib < len(b):
		return -1
	}
	return 0
}

// Strings sorts s in place in natural order.
func Strings(s []string) {
	sort.Slice(s, func(i, j int) bool { return Less(s[i], s[j]) })
}

// SortBy sorts a slice of n elements in natural order of the code returned
// by key.
func SortBy(n int, key func(i int) string, swap func(i, j int)) {
	sort.Sort(&byKey{n: n, key: key, swap: swap})
}

type byKey struct {
	n    int
	key  func(i int) string
	swap func(i, j int)
}

func (s *byKey) Len() int           { return s.n }
func (s *byKey) Less(i, j int) bool { return Less(s.key(i), s.key(j)) }
func (s *byKey) Swap(i, j int)      { s.swap(i, j) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// digitRun returns the bounds of the digit run starting at i.
func digitRun(s string, i int) (start, end int) {
	start = i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return start, i
}

// compareDigits compares two digit strings by numeric value.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
