// Package slug normalizes the identifiers used to address articles across
// legacy and canonical URL schemes.
package slug

import (
	"path/filepath"
	"strings"
)

// fileAliases maps irregular source filenames (pre-extension, case-sensitive)
// to their published slugs. These exist because the filenames contain
// non-ASCII or mixed-case tokens that would normalize into something ugly;
// the published URLs predate the normalizer and must not change.
var fileAliases = map[string]string{
	"SEO":                              "seo-optimization-guide",
	"AI生成PPT":                          "ai-generated-presentations",
	"AI-Revolution-Finance":            "ai-revolution-finance",
	"AI-Revolution-American-Workplaces": "ai-revolution-american-workplaces",
}

// requestAliases maps short-form or legacy request slugs to canonical slugs.
// Lookup is exact first, then lowercased.
var requestAliases = map[string]string{
	"seo": "seo-optimization-guide",
}

// AddFileAlias registers an extra filename→slug mapping (from config).
func AddFileAlias(filename, canonical string) {
	fileAliases[filename] = canonical
}

// AddRequestAlias registers an extra request-time alias (from config).
func AddRequestAlias(alias, canonical string) {
	requestAliases[alias] = canonical
}

// Slugify converts free text (heading text, tag names, category names) into a
// URL-safe slug: lowercase, whitespace collapsed to single hyphens, "&"
// becomes "and", everything outside [a-z0-9-] dropped. Idempotent.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceToHyphen(s)
	s = strings.ReplaceAll(s, "&", "-and-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return trimCollapseHyphens(b.String())
}

// CleanSlug derives the canonical slug for an article source filename.
// The alias table is consulted with the exact pre-extension filename before
// any normalization. The fallback deliberately differs from Slugify: it
// replaces disallowed characters with hyphens instead of deleting them,
// because the historical URLs in the alias tables were minted that way.
func CleanSlug(filename string) string {
	s := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	if alias, ok := fileAliases[s]; ok {
		return alias
	}

	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return trimCollapseHyphens(b.String())
}

// Resolve maps a request-time slug to its canonical form: trims, consults the
// request alias table (exact match, then lowercased), and otherwise lowercases
// the input. Empty input is returned unchanged. Resolve never validates that
// the result exists in the corpus; a missing target fails the caller's lookup
// normally.
func Resolve(requested string) string {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		return trimmed
	}

	if canonical, ok := requestAliases[trimmed]; ok {
		return canonical
	}

	lower := strings.ToLower(trimmed)
	if canonical, ok := requestAliases[lower]; ok {
		return canonical
	}
	return lower
}

func whitespaceToHyphen(s string) string {
	return strings.Join(strings.Fields(s), "-")
}

func trimCollapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
