package watcher

import "testing"

func TestIsArticleFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"post.mdx", true},
		{"post.md", true},
		{"/abs/path/post.mdx", true},
		{"notes.txt", false},
		{"post.mdx.swp", false},
		{"README", false},
	}
	for _, c := range cases {
		if got := isArticleFile(c.name); got != c.want {
			t.Errorf("isArticleFile(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
