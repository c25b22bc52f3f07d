package content

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	raw := `---
title: My First Post
publishedAt: 2025-01-15
summary: "A quoted summary"
category: Engineering
---

# Hello

Body text here.`

	meta, body, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if meta.Title != "My First Post" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.PublishedAt != "2025-01-15" {
		t.Errorf("PublishedAt = %q", meta.PublishedAt)
	}
	if meta.Summary != "A quoted summary" {
		t.Errorf("quotes not stripped: Summary = %q", meta.Summary)
	}
	if meta.Category != "Engineering" {
		t.Errorf("Category = %q", meta.Category)
	}
	if !strings.HasPrefix(body, "# Hello") {
		t.Errorf("body not trimmed to content start: %q", body)
	}
	if strings.Contains(body, "---") {
		t.Errorf("delimiter leaked into body: %q", body)
	}
}

func TestParseMissingDelimiterFails(t *testing.T) {
	_, _, err := Parse("title: No Frontmatter\n\nJust text.")
	if !errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected ErrNoFrontmatter, got %v", err)
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"json array", `tags: ["AI", "SEO"]`, []string{"AI", "SEO"}},
		{"bracketed unquoted falls back", `tags: [AI, SEO]`, []string{"AI", "SEO"}},
		{"comma separated", `tags: AI, SEO`, []string{"AI", "SEO"}},
		{"single tag", `tags: AI`, []string{"AI"}},
		{"spaces preserved inside tags", `tags: AI Agents, GPT`, []string{"AI Agents", "GPT"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := "---\ntitle: T\n" + c.line + "\n---\nbody"
			meta, _, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(meta.Tags, c.want) {
				t.Errorf("Tags = %#v, want %#v", meta.Tags, c.want)
			}
		})
	}
}

func TestParseValueWithColon(t *testing.T) {
	raw := "---\ntitle: Go 1.25: What Changed\n---\nbody"
	meta, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Only the first ": " splits; the rest of the line is the value.
	if meta.Title != "Go 1.25: What Changed" {
		t.Errorf("Title = %q", meta.Title)
	}
}

func TestParseExtraFieldsVerbatim(t *testing.T) {
	raw := "---\ntitle: T\nfaq: [{\"q\": \"Why?\"}]\nhowto: step one; step two\n---\nbody"
	meta, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if meta.Extra["faq"] != `[{"q": "Why?"}]` {
		t.Errorf("faq not stored verbatim: %q", meta.Extra["faq"])
	}
	if meta.Extra["howto"] != "step one; step two" {
		t.Errorf("howto = %q", meta.Extra["howto"])
	}
}

func TestParseMissingSummaryDegrades(t *testing.T) {
	raw := "---\ntitle: T\npublishedAt: 2025-01-01\n---\nbody"
	meta, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if meta.Summary != "" {
		t.Errorf("Summary = %q, want empty", meta.Summary)
	}
}

func TestParseDeterministic(t *testing.T) {
	raw := "---\ntitle: T\ntags: [A, B]\n---\nbody"
	m1, b1, _ := Parse(raw)
	m2, b2, _ := Parse(raw)
	if !reflect.DeepEqual(m1, m2) || b1 != b2 {
		t.Error("Parse is not deterministic over identical input")
	}
}
