package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell/internal/slug"
)

// Loader reads the article corpus from a source directory. Every Load call
// re-reads the whole directory; the live search cache provides the
// process-lifetime caching layer, not the loader.
type Loader struct {
	Dir string
}

// NewLoader returns a Loader for the given article source directory.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load parses every article file in the source directory and returns the
// corpus. A file with malformed frontmatter fails the whole load: a silently
// skipped article is a content-loss bug, so bad frontmatter must block the
// build rather than reach readers as a missing page.
//
// The returned slice is in directory order (unsorted). If two filenames map
// to the same slug both entries are kept; lookups by slug see the later one.
func (l *Loader) Load() ([]Article, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir %s: %w", l.Dir, err)
	}

	var articles []Article
	for _, e := range entries {
		if e.IsDir() || !isArticleFile(e.Name()) {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(l.Dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read article %s: %w", e.Name(), err)
		}

		meta, body, err := Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse article %s: %w", e.Name(), err)
		}

		articles = append(articles, Article{
			Slug:     slug.CleanSlug(e.Name()),
			Metadata: meta,
			Content:  body,
		})
	}

	return articles, nil
}

// BySlug returns the article with the given canonical slug. When slugs
// collide the last file wins, matching the loader's documented semantics.
func BySlug(articles []Article, s string) (Article, bool) {
	var found Article
	ok := false
	for _, a := range articles {
		if a.Slug == s {
			found = a
			ok = true
		}
	}
	return found, ok
}

// SortByDateDesc sorts articles newest-first by publishedAt. Articles with
// unparseable dates sort last; ties break by slug so output is deterministic.
func SortByDateDesc(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, iok := ParseDate(articles[i].Metadata.PublishedAt)
		tj, jok := ParseDate(articles[j].Metadata.PublishedAt)
		if iok != jok {
			return iok // valid dates before invalid ones
		}
		if !iok {
			return articles[i].Slug < articles[j].Slug
		}
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return articles[i].Slug < articles[j].Slug
	})
}

// ParseDate parses a frontmatter date string. Accepts bare dates
// ("2025-01-15"), dates with a time component, and full RFC 3339.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isArticleFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".mdx" || ext == ".md"
}
