package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeArticle(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "first-post.mdx", "---\ntitle: First\npublishedAt: 2025-01-01\n---\nBody one")
	writeArticle(t, dir, "second-post.md", "---\ntitle: Second\npublishedAt: 2025-02-01\n---\nBody two")
	writeArticle(t, dir, "notes.txt", "not an article")
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}

	articles, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 (non-article files must be skipped)", len(articles))
	}

	a, ok := BySlug(articles, "first-post")
	if !ok {
		t.Fatal("first-post not found by slug")
	}
	if a.Metadata.Title != "First" || a.Content != "Body one" {
		t.Errorf("unexpected article: %+v", a)
	}
}

func TestLoaderBadFrontmatterFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "good.mdx", "---\ntitle: Good\n---\nBody")
	writeArticle(t, dir, "bad.mdx", "no frontmatter at all")

	_, err := NewLoader(dir).Load()
	if err == nil {
		t.Fatal("expected load to fail on malformed article")
	}
	if !strings.Contains(err.Error(), "bad.mdx") {
		t.Errorf("error does not name the offending file: %v", err)
	}
}

func TestLoaderMissingDir(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).Load()
	if err == nil {
		t.Fatal("expected error for missing content dir")
	}
}

func TestBySlugLastMatchWins(t *testing.T) {
	articles := []Article{
		{Slug: "dup", Metadata: Metadata{Title: "Older"}},
		{Slug: "other"},
		{Slug: "dup", Metadata: Metadata{Title: "Newer"}},
	}
	a, ok := BySlug(articles, "dup")
	if !ok || a.Metadata.Title != "Newer" {
		t.Errorf("BySlug = %+v, want the last colliding entry", a)
	}

	if _, ok := BySlug(articles, "missing"); ok {
		t.Error("BySlug found a slug that does not exist")
	}
}

func TestSortByDateDesc(t *testing.T) {
	articles := []Article{
		{Slug: "b-no-date"},
		{Slug: "old", Metadata: Metadata{PublishedAt: "2024-06-01"}},
		{Slug: "a-no-date", Metadata: Metadata{PublishedAt: "not a date"}},
		{Slug: "new", Metadata: Metadata{PublishedAt: "2025-03-10"}},
		{Slug: "mid", Metadata: Metadata{PublishedAt: "2025-01-15T09:30:00"}},
	}
	SortByDateDesc(articles)

	var got []string
	for _, a := range articles {
		got = append(got, a.Slug)
	}
	want := []string{"new", "mid", "old", "a-no-date", "b-no-date"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2025-01-15", "2025-01-15T09:30:00", "2025-01-15T09:30:00Z"}
	for _, s := range valid {
		if _, ok := ParseDate(s); !ok {
			t.Errorf("ParseDate(%q) failed, want success", s)
		}
	}
	invalid := []string{"", "   ", "15/01/2025", "yesterday"}
	for _, s := range invalid {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) succeeded, want failure", s)
		}
	}
}
