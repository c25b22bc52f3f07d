package text

import (
	"regexp"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/slug"
)

// Heading is one markdown heading extracted from an article body, with an
// anchor slug derived the same way as article slugs. Two headings with the
// same text in one document get the same anchor; see DESIGN.md.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Slug  string `json:"slug"`
}

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Headings extracts all markdown headings from an article body for a table
// of contents. Lines inside fenced code blocks are ignored, so a commented
// "# example" in a shell snippet never becomes a TOC entry.
func Headings(body string) []Heading {
	var headings []Heading
	inCodeBlock := false

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}

		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		txt := strings.TrimSpace(m[2])
		headings = append(headings, Heading{
			Level: len(m[1]),
			Text:  txt,
			Slug:  slug.Slugify(txt),
		})
	}

	return headings
}
