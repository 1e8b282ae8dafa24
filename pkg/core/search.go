package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// matcher performs case-insensitive substring matching.
// Both sides are NFC-normalised and case-folded so that "COOKIE", "cookie"
// and "Cookie" all match the same text.
type matcher struct {
	needle string
	caser  cases.Caser
}

func newMatcher(term string) *matcher {
	m := &matcher{caser: cases.Fold()}
	m.needle = m.fold(strings.TrimSpace(term))
	return m
}

func (m *matcher) empty() bool {
	return m.needle == ""
}

func (m *matcher) match(haystack string) bool {
	return strings.Contains(m.fold(haystack), m.needle)
}

func (m *matcher) fold(s string) string {
	return m.caser.String(norm.NFC.String(s))
}
