package text

import (
	"regexp"
	"strings"
)

// MaxPlainTextLength bounds the plain-text rendition stored per article in
// the offline search index, keeping the artifact small enough to ship to
// browsers.
const MaxPlainTextLength = 5000

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	mdPunctRe    = regexp.MustCompile(`[*_#\[\]()]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// PlainText reduces a markdown body to a searchable plain-text rendition:
// fenced code blocks and HTML-like tags are dropped, basic markdown
// punctuation stripped, whitespace collapsed, and the result hard-truncated
// to MaxPlainTextLength. This is a heuristic for client-side substring
// search, not a markdown renderer.
func PlainText(body string) string {
	s := fencedCodeRe.ReplaceAllString(body, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = mdPunctRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > MaxPlainTextLength {
		s = s[:MaxPlainTextLength]
	}
	return s
}
