// Package lex provides the small lexical helpers shared by the offset
// and byte-pattern parsers: whitespace trimming, whitespace splitting,
// and hex-nibble classification.
package lex

import "strings"

// Trim strips leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Fields splits s on runs of whitespace, discarding empty fields.
func Fields(s string) []string {
	return strings.Fields(s)
}

// IsHexDigit reports whether r is one of [0-9A-Fa-f].
func IsHexDigit(r byte) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}

// IsSpace reports whether r is ASCII whitespace.
func IsSpace(r byte) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
