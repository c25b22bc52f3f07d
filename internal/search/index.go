// Package search projects the article corpus into a flattened searchable
// record set. The same projection rule backs both realizations: the live
// TTL-cached index served over HTTP, and the offline static artifact
// written for client-side search.
package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/content"
	"github.com/inkwell-labs/inkwell/internal/text"
)

// Record is the minimal searchable projection of one article. Content is
// only populated in the offline artifact.
type Record struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content,omitempty"`
}

// Project flattens a corpus into search records, in corpus order.
func Project(articles []content.Article) []Record {
	records := make([]Record, 0, len(articles))
	for _, a := range articles {
		records = append(records, Record{
			Slug:        a.Slug,
			Title:       a.Metadata.Title,
			Summary:     a.Metadata.Summary,
			PublishedAt: a.Metadata.PublishedAt,
		})
	}
	return records
}

// ProjectWithContent is Project plus the bounded plain-text rendition of
// each body, for the offline artifact.
func ProjectWithContent(articles []content.Article) []Record {
	records := Project(articles)
	for i, a := range articles {
		records[i].Content = text.PlainText(a.Content)
	}
	return records
}

// Filter returns the records whose title, summary, or content contains the
// query, case-insensitively. An empty query returns all records. Matching is
// substring only; this index is not a ranked search engine.
func Filter(records []Record, query string) []Record {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return records
	}

	var matched []Record
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Title), query) ||
			strings.Contains(strings.ToLower(r.Summary), query) ||
			strings.Contains(strings.ToLower(r.Content), query) {
			matched = append(matched, r)
		}
	}
	return matched
}

// WriteStatic regenerates the offline search artifact: the full projection,
// including truncated plain-text content, as one JSON file. The artifact is
// served statically, never dynamically.
func WriteStatic(loader *content.Loader, outPath string) (int, error) {
	articles, err := loader.Load()
	if err != nil {
		return 0, fmt.Errorf("load corpus: %w", err)
	}

	records := ProjectWithContent(articles)
	data, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("encode search index: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("write search index: %w", err)
	}
	return len(records), nil
}
