package search

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkwell-labs/inkwell/internal/content"
	"github.com/inkwell-labs/inkwell/internal/text"
)

func corpus() []content.Article {
	return []content.Article{
		{
			Slug: "go-caching",
			Metadata: content.Metadata{
				Title:       "Caching in Go",
				Summary:     "TTL caches and invalidation",
				PublishedAt: "2025-01-15",
			},
			Content: "# Caching\n\nBody about *caches*.",
		},
		{
			Slug: "http-servers",
			Metadata: content.Metadata{
				Title:       "HTTP Servers",
				Summary:     "Building APIs",
				PublishedAt: "2025-02-01",
			},
			Content: "Handlers and middleware.",
		},
	}
}

func TestProject(t *testing.T) {
	records := Project(corpus())
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	r := records[0]
	if r.Slug != "go-caching" || r.Title != "Caching in Go" ||
		r.Summary != "TTL caches and invalidation" || r.PublishedAt != "2025-01-15" {
		t.Errorf("record = %+v", r)
	}
	if r.Content != "" {
		t.Errorf("live projection must not carry body content, got %q", r.Content)
	}
}

func TestProjectWithContent(t *testing.T) {
	records := ProjectWithContent(corpus())
	want := text.PlainText(corpus()[0].Content)
	if records[0].Content != want {
		t.Errorf("Content = %q, want %q", records[0].Content, want)
	}
}

func TestFilter(t *testing.T) {
	records := ProjectWithContent(corpus())

	if got := Filter(records, ""); len(got) != len(records) {
		t.Errorf("empty query returned %d records, want all %d", len(got), len(records))
	}
	if got := Filter(records, "  "); len(got) != len(records) {
		t.Errorf("blank query returned %d records, want all", len(got))
	}

	got := Filter(records, "CACHING")
	if len(got) != 1 || got[0].Slug != "go-caching" {
		t.Errorf("title match = %+v", got)
	}

	got = Filter(records, "apis")
	if len(got) != 1 || got[0].Slug != "http-servers" {
		t.Errorf("summary match = %+v", got)
	}

	got = Filter(records, "middleware")
	if len(got) != 1 || got[0].Slug != "http-servers" {
		t.Errorf("content match = %+v", got)
	}

	if got := Filter(records, "no such phrase"); len(got) != 0 {
		t.Errorf("got %d matches for absent phrase", len(got))
	}
}

func TestWriteStatic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "posts")
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatal(err)
	}
	raw := "---\ntitle: Static Post\nsummary: For the artifact\npublishedAt: 2025-03-01\n---\n# Heading\n\nSearchable body."
	if err := os.WriteFile(filepath.Join(src, "static-post.mdx"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "public", "search-index.json")
	n, err := WriteStatic(content.NewLoader(src), out)
	if err != nil {
		t.Fatalf("WriteStatic: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "static-post" {
		t.Fatalf("records = %+v", records)
	}
	if !strings.Contains(records[0].Content, "Searchable body.") {
		t.Errorf("artifact record missing plain-text content: %q", records[0].Content)
	}
}

func TestWriteStaticFailsOnBadCorpus(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.mdx"), []byte("no frontmatter"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteStatic(content.NewLoader(dir), filepath.Join(dir, "out.json")); err == nil {
		t.Fatal("expected error for malformed corpus")
	}
}
