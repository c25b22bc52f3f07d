package content

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// delimiterRe matches the leading frontmatter block: a pair of three-hyphen
// markers around a line-oriented key/value body. The content fed to articles
// is everything after the block, trimmed.
var (
	delimiterRe = regexp.MustCompile(`(?s)---\s*(.*?)\s*---`)
	quotedRe    = regexp.MustCompile(`^['"](.*)['"]$`)
)

// ErrNoFrontmatter is returned when a source file lacks the delimiter pair.
// There is no partial-parse fallback: an article without frontmatter is a
// content bug that must block the build, not a file to skip silently.
var ErrNoFrontmatter = fmt.Errorf("missing frontmatter delimiter")

// Parse splits raw article text into metadata and body. Each metadata line is
// split on the first ": "; keys are trimmed and a single layer of surrounding
// quotes is stripped from values. The tags field accepts either a JSON array
// or a comma-separated list; a bracketed value that fails JSON parsing falls
// back to comma-splitting rather than surfacing the error.
func Parse(raw string) (Metadata, string, error) {
	loc := delimiterRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		return Metadata{}, "", ErrNoFrontmatter
	}

	block := raw[loc[2]:loc[3]]
	body := strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])

	meta := Metadata{}
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = quotedRe.ReplaceAllString(value, "$1")

		switch key {
		case "title":
			meta.Title = value
		case "publishedAt":
			meta.PublishedAt = value
		case "updatedAt":
			meta.UpdatedAt = value
		case "summary":
			meta.Summary = value
		case "image":
			meta.Image = value
		case "category":
			meta.Category = value
		case "tags":
			meta.Tags, _ = parseTags(value)
		default:
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[key] = value
		}
	}

	return meta, body, nil
}

// parseTags parses a tags value. The second return reports whether a
// bracketed value fell back to comma-splitting, for observability; the
// external contract stays best-effort either way.
func parseTags(value string) ([]string, bool) {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		var tags []string
		if err := json.Unmarshal([]byte(value), &tags); err == nil {
			return tags, false
		}
		// Bracketed but not valid JSON (unquoted elements are common in
		// hand-written frontmatter). Treat the inside as a comma list.
		inner := strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
		return splitTags(inner), true
	}
	return splitTags(value), false
}

func splitTags(value string) []string {
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
