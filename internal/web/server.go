// Package web serves the content pipeline over HTTP: the cached search
// index, article and related-article reads, and token-gated cache
// invalidation.
package web

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/content"
	"github.com/inkwell-labs/inkwell/internal/search"
	"github.com/inkwell-labs/inkwell/internal/similar"
	"github.com/inkwell-labs/inkwell/internal/slug"
	"github.com/inkwell-labs/inkwell/internal/text"
)

// Server handles the HTTP API. The cache instance is owned here, not in a
// package global, so concurrent servers and tests stay independent.
type Server struct {
	cache          *search.Cache
	refreshToken   string
	wordsPerMinute int
	version        string
}

// NewServer builds a Server over the given cache. An empty refreshToken
// allows unauthenticated invalidation (the permissive non-production
// default); Serve warns about it at startup.
func NewServer(cache *search.Cache, refreshToken string, wordsPerMinute int, version string) *Server {
	return &Server{
		cache:          cache,
		refreshToken:   refreshToken,
		wordsPerMinute: wordsPerMinute,
		version:        version,
	}
}

// Serve starts the HTTP server on addr and blocks.
func Serve(addr string, s *Server) error {
	if s.refreshToken == "" {
		fmt.Fprintf(os.Stderr, "inkwell: WARNING: no refresh_token configured — cache invalidation is unauthenticated\n")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	fmt.Fprintf(os.Stderr, "inkwell API: http://%s\n", listener.Addr())
	return http.Serve(listener, s.Handler())
}

// Handler returns the routed handler, for Serve and for httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/search/refresh", s.handleRefresh)
	mux.HandleFunc("/api/articles", s.handleArticles)
	mux.HandleFunc("/api/articles/", s.handleArticleBySlug) // /api/articles/{slug}
	mux.HandleFunc("/api/related/", s.handleRelated)        // /api/related/{slug}
	return securityHeaders(mux)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// --- Handlers ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	records, err := s.cache.Records()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "index unavailable")
		return
	}

	age := ""
	if d, warm := s.cache.Age(); warm {
		age = d.String()
	}

	writeJSON(w, map[string]any{
		"article_count": len(records),
		"cache_age":     age,
		"version":       s.version,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	records, err := s.cache.Records()
	if err != nil {
		// Cache has already been cleared; surface a retryable error rather
		// than stale or corrupt data.
		writeError(w, http.StatusInternalServerError, "failed to fetch posts")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		records = search.Filter(records, q)
	}
	if records == nil {
		records = []search.Record{}
	}
	writeJSON(w, records)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
		return
	}

	s.cache.Invalidate()
	writeJSON(w, map[string]string{"status": "invalidated"})
}

// authorized checks the bearer token. With no token configured every
// request passes; rejected requests never touch cache state.
func (s *Server) authorized(r *http.Request) bool {
	if s.refreshToken == "" {
		return true
	}
	auth := r.Header.Get("Authorization")
	want := "Bearer " + s.refreshToken
	return subtle.ConstantTimeCompare([]byte(auth), []byte(want)) == 1
}

// articleJSON is the read-side rendition of one article.
type articleJSON struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Summary     string         `json:"summary"`
	PublishedAt string         `json:"publishedAt"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
	Image       string         `json:"image,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	DateDisplay string         `json:"dateDisplay"`
	ReadingTime int            `json:"readingTime"`
	Headings    []text.Heading `json:"headings,omitempty"`
	Content     string         `json:"content,omitempty"`
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.cache.Articles()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch posts")
		return
	}

	// Newest first for listing surfaces. Sort a copy: the cache owns its slice.
	sorted := make([]content.Article, len(articles))
	copy(sorted, articles)
	content.SortByDateDesc(sorted)

	out := make([]articleJSON, 0, len(sorted))
	for _, a := range sorted {
		out = append(out, s.renderArticle(a, false))
	}
	writeJSON(w, out)
}

func (s *Server) handleArticleBySlug(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/articles/")
	if raw == "" {
		s.handleArticles(w, r)
		return
	}

	articles, err := s.cache.Articles()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch posts")
		return
	}

	article, ok := s.lookup(articles, raw)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, s.renderArticle(article, true))
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/related/")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing slug")
		return
	}

	limit := 3
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 20 {
			limit = n
		}
	}

	articles, err := s.cache.Articles()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch posts")
		return
	}

	article, ok := s.lookup(articles, raw)
	if !ok {
		http.NotFound(w, r)
		return
	}

	current, candidates := s.toPosts(article, articles)
	results := similar.TopSimilar(current, candidates, limit)

	type relatedJSON struct {
		Slug    string   `json:"slug"`
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		Score   float64  `json:"score"`
		Reasons []string `json:"reasons"`
	}
	out := make([]relatedJSON, 0, len(results))
	for _, res := range results {
		out = append(out, relatedJSON{
			Slug:    res.Post.Slug,
			Title:   res.Post.Metadata.Title,
			Summary: text.TruncateSummary(res.Post.Metadata.Summary, 0),
			Score:   res.Score,
			Reasons: res.Reasons,
		})
	}
	writeJSON(w, out)
}

// --- Helpers ---

// lookup resolves a request-time slug against the corpus. Percent-encoded
// input is decoded first; if decoding fails the raw string is resolved
// as-is, so a stray "%" in a crawler URL degrades to not-found instead of
// an error page.
func (s *Server) lookup(articles []content.Article, raw string) (content.Article, bool) {
	requested := raw
	if decoded, err := url.PathUnescape(raw); err == nil {
		requested = decoded
	}
	return content.BySlug(articles, slug.Resolve(requested))
}

func (s *Server) renderArticle(a content.Article, full bool) articleJSON {
	out := articleJSON{
		Slug:        a.Slug,
		Title:       a.Metadata.Title,
		Summary:     a.Metadata.Summary,
		PublishedAt: a.Metadata.PublishedAt,
		UpdatedAt:   a.Metadata.UpdatedAt,
		Image:       a.Metadata.Image,
		Category:    a.Metadata.Category,
		Tags:        a.Metadata.Tags,
		DateDisplay: text.FormatDate(a.Metadata.PublishedAt, true),
		ReadingTime: text.ReadingTime(a.Content, s.wordsPerMinute),
	}
	if full {
		out.Headings = text.Headings(a.Content)
		out.Content = a.Content
	}
	return out
}

func (s *Server) toPosts(current content.Article, articles []content.Article) (similar.Post, []similar.Post) {
	candidates := make([]similar.Post, 0, len(articles))
	for _, a := range articles {
		candidates = append(candidates, similar.Post{
			Slug:        a.Slug,
			Metadata:    a.Metadata,
			ReadingTime: text.ReadingTime(a.Content, s.wordsPerMinute),
		})
	}
	cur := similar.Post{
		Slug:        current.Slug,
		Metadata:    current.Metadata,
		ReadingTime: text.ReadingTime(current.Content, s.wordsPerMinute),
	}
	return cur, candidates
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
