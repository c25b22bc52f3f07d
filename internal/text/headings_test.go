package text

import (
	"reflect"
	"testing"
)

func TestHeadings(t *testing.T) {
	body := `# Title

Intro text.

## Getting Started

` + "```bash\n# this is a comment, not a heading\necho hi\n```" + `

### Tips & Tricks

####### seven hashes is not a heading
plain line # with a hash
`

	got := Headings(body)
	want := []Heading{
		{Level: 1, Text: "Title", Slug: "title"},
		{Level: 2, Text: "Getting Started", Slug: "getting-started"},
		{Level: 3, Text: "Tips & Tricks", Slug: "tips-and-tricks"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Headings = %#v, want %#v", got, want)
	}
}

func TestHeadingsEmptyBody(t *testing.T) {
	if got := Headings(""); len(got) != 0 {
		t.Errorf("Headings(\"\") = %#v, want none", got)
	}
}

func TestHeadingsUnclosedFence(t *testing.T) {
	body := "## Before\n```\n# inside an unclosed fence\n"
	got := Headings(body)
	if len(got) != 1 || got[0].Text != "Before" {
		t.Errorf("Headings = %#v, want only the heading before the fence", got)
	}
}

func TestPlainText(t *testing.T) {
	body := "# Title\n\nSome *emphasised* text with [a link](https://example.com) and <em>markup</em>.\n\n```go\nfmt.Println(\"dropped\")\n```\n\nTail text."
	got := PlainText(body)

	if got != "Title Some emphasised text with a linkhttps://example.com and markup. Tail text." {
		t.Errorf("PlainText = %q", got)
	}
}

func TestPlainTextTruncates(t *testing.T) {
	long := ""
	for len(long) < MaxPlainTextLength*2 {
		long += "word "
	}
	got := PlainText(long)
	if len(got) != MaxPlainTextLength {
		t.Errorf("len = %d, want %d", len(got), MaxPlainTextLength)
	}
}
