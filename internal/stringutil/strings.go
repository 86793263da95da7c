// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
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

// Normalize applies NFKC normalization and trims surrounding whitespace.
// Text extracted from PDFs often carries decomposed accents ("I" + U+0301)
// or compatibility forms (ligatures, full-width digits); after Normalize
// "TEORÍA" compares equal to its composed spelling.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// FoldAccents lowercases s and strips combining marks.
//
// Example:
//
//	FoldAccents("COMISIÓN") returns "comision"
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ContainsFold reports whether substr is within s, ignoring case and accents.
func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldAccents(s), FoldAccents(substr))
}

// IsUpperWords reports whether s consists only of ASCII uppercase letters and
// whitespace. Accented capitals do not qualify. Returns false for empty strings.
func IsUpperWords(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return len([]rune(s))
}
