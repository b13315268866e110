package common

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeASIN normalizes and validates an Amazon ASIN as found in book
// metadata.
//
// For books, ASIN is a 10-character alphanumeric identifier and is often the same
// as ISBN-10 (including an 'X' check digit). Kindle store books use "B0..." ids.
func NormalizeASIN(in string) (string, error) {
	s := strings.Map(func(r rune) rune {
		if r == '-' || r == 0 || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, in)
	if s == "" {
		return "", nil
	}

	if len(s) != 10 {
		return "", fmt.Errorf("asin must be 10 characters, got %d", len(s))
	}
	if i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && (r < 'A' || r > 'Z')
	}); i >= 0 {
		return "", fmt.Errorf("asin must be alphanumeric A-Z0-9, got %q", s[i])
	}
	return s, nil
}
