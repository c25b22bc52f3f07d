// Package content loads the article corpus: it walks the source directory,
// parses each file's frontmatter, and derives canonical slugs. The loader
// owns the in-memory list; every call hands back a fresh slice so callers
// can never corrupt shared state.
package content

// Metadata holds the structured frontmatter of one article. Required fields
// (title, publishedAt, summary) are not validated at parse time; consumers
// degrade gracefully when they are empty.
type Metadata struct {
	Title       string            `json:"title"`
	PublishedAt string            `json:"publishedAt"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
	Summary     string            `json:"summary"`
	Image       string            `json:"image,omitempty"`
	Category    string            `json:"category,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Extra       map[string]string `json:"-"` // faq, howto, and anything else, verbatim
}

// Article is one parsed source file.
type Article struct {
	Slug     string   `json:"slug"`
	Metadata Metadata `json:"metadata"`
	Content  string   `json:"content"`
}
