package text

import (
	"strings"
	"testing"
	"time"
)

// fixNow pins the clock for relative-date assertions.
func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	old := Now
	Now = func() time.Time { return at }
	t.Cleanup(func() { Now = old })
}

func TestFormatDate(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	cases := []struct {
		name     string
		date     string
		relative bool
		want     string
	}{
		{"plain", "2025-01-15", false, "January 15, 2025"},
		{"empty", "", false, "Unknown Date"},
		{"whitespace", "   ", true, "Unknown Date"},
		{"unparseable", "15/01/2025", true, "Invalid Date"},
		{"days ago", "2025-06-12", true, "June 12, 2025 (3d ago)"},
		{"months ago", "2025-01-15", true, "January 15, 2025 (5mo ago)"},
		{"years ago", "2023-06-15", true, "June 15, 2023 (2y ago)"},
		{"today", "2025-06-15", true, "June 15, 2025 (Today)"},
		{"future", "2025-07-01", true, "July 1, 2025 (Future)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FormatDate(c.date, c.relative); got != c.want {
				t.Errorf("FormatDate(%q, %v) = %q, want %q", c.date, c.relative, got, c.want)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}

	cases := []struct {
		name string
		body string
		wpm  int
		want int
	}{
		{"empty body is unknown", "", 0, 0},
		{"whitespace only", "  \n\t ", 0, 0},
		{"one word rounds up", "hello", 0, 1},
		{"exactly one minute", words(225), 0, 1},
		{"just over rounds up", words(226), 0, 2},
		{"custom speed", words(100), 50, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ReadingTime(c.body, c.wpm); got != c.want {
				t.Errorf("ReadingTime = %d, want %d", got, c.want)
			}
		})
	}
}

func TestTruncateSummary(t *testing.T) {
	if got := TruncateSummary("", 0); got != "" {
		t.Errorf("empty summary = %q, want empty", got)
	}

	short := "A short summary."
	if got := TruncateSummary(short, 0); got != short {
		t.Errorf("short summary changed: %q", got)
	}

	got := TruncateSummary("alpha beta gamma delta", 12)
	if got != "alpha beta..." {
		t.Errorf("truncated = %q, want %q", got, "alpha beta...")
	}
	if strings.Contains(strings.TrimSuffix(got, "..."), "gamm") {
		t.Errorf("cut mid-word: %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{1000, "1.0K"},
		{2_300_000, "2.3M"},
		{1_200_000_000, "1.2B"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
