// Package report renders the ranked opportunity collection into static
// artifacts: an HTML report, a CSV export, and a markdown digest.
package report

import (
	"fmt"
	"time"
)

// FormatCurrency formats an amount as a short currency string.
func FormatCurrency(val float64) string {
	if val <= 0 {
		return "N/A"
	}

	switch {
	case val >= 1000000:
		return fmt.Sprintf("$%.1fM", val/1000000)
	case val >= 1000:
		return fmt.Sprintf("$%.0fK", val/1000)
	}

	return fmt.Sprintf("$%.0f", val)
}

// FormatDate formats a canonical date for display; absent dates render
// empty.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format("2006-01-02")
}

// displayOrNA substitutes "N/A" for empty display strings.
func displayOrNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
