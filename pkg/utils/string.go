// Package utils provides common utility functions.
package utils

import "strings"

// NormalizeWhitespace replaces runs of whitespace with a single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates a string to max length, appending an ellipsis
// when anything was cut. Truncation is rune-safe.
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}

// JoinNonEmpty joins the non-empty parts with the separator.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]

	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}
