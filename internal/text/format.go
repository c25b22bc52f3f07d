// Package text holds the pure formatting utilities used by every
// downstream consumer: human-facing dates, reading-time estimation,
// heading extraction, summary truncation, and the plain-text rendition
// used by the offline search index.
package text

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell/internal/content"
)

// DefaultWordsPerMinute is the assumed reading speed for time estimates.
const DefaultWordsPerMinute = 225

// Now is swappable in tests that exercise relative date formatting.
var Now = time.Now

// FormatDate renders a frontmatter date for display, e.g. "January 15, 2025".
// With includeRelative it appends a coarse relative marker:
// "January 15, 2025 (3d ago)". Empty input renders "Unknown Date" and
// unparseable input "Invalid Date"; bad dates must never panic a page render.
func FormatDate(date string, includeRelative bool) string {
	if strings.TrimSpace(date) == "" {
		return "Unknown Date"
	}

	target, ok := content.ParseDate(date)
	if !ok {
		return "Invalid Date"
	}

	full := target.Format("January 2, 2006")
	if !includeRelative {
		return full
	}

	daysDiff := int(Now().Sub(target).Hours() / 24)
	var relative string
	switch {
	case daysDiff < 0:
		relative = "Future"
	case daysDiff == 0:
		relative = "Today"
	case daysDiff < 30:
		relative = fmt.Sprintf("%dd ago", daysDiff)
	case daysDiff < 365:
		relative = fmt.Sprintf("%dmo ago", daysDiff/30)
	default:
		relative = fmt.Sprintf("%dy ago", daysDiff/365)
	}

	return fmt.Sprintf("%s (%s)", full, relative)
}

// ReadingTime estimates reading time in whole minutes at wordsPerMinute.
// Pass 0 to use the default speed.
func ReadingTime(body string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// TruncateSummary caps a summary at maxLength characters, cutting at the last
// word boundary and appending an ellipsis. Pass 0 for the default of 160.
func TruncateSummary(summary string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 160
	}
	if summary == "" {
		return ""
	}
	if len(summary) <= maxLength {
		return summary
	}

	cut := summary[:maxLength]
	if idx := strings.LastIndexFunc(cut, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }); idx > 0 {
		cut = strings.TrimRight(cut[:idx], " \t\n")
	}
	return cut + "..."
}

// FormatNumber renders a count with a K/M/B suffix: 1500 -> "1.5K".
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
