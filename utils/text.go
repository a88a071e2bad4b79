package utils

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes trims surrounding whitespace and cuts s to at most max runes.
func TruncateRunes(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}

// OptionalText returns nil for blank input, otherwise a pointer to the truncated text.
func OptionalText(s *string, max int) *string {
	if s == nil {
		return nil
	}
	t := TruncateRunes(*s, max)
	if t == "" {
		return nil
	}
	return &t
}
