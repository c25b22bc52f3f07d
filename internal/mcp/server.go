// Package mcp implements the MCP stdio server for inkwell, exposing the
// article corpus to editorial tooling: search, reads, related articles, and
// cache refresh.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inkwell-labs/inkwell/internal/content"
	"github.com/inkwell-labs/inkwell/internal/search"
	"github.com/inkwell-labs/inkwell/internal/similar"
	"github.com/inkwell-labs/inkwell/internal/slug"
	"github.com/inkwell-labs/inkwell/internal/text"
)

// Version is set by the caller (main) before calling Serve.
var Version = "dev"

type server struct {
	cache          *search.Cache
	wordsPerMinute int
}

// Serve starts the MCP server on stdio over the given cache.
func Serve(cache *search.Cache, wordsPerMinute int) error {
	s := &server{cache: cache, wordsPerMinute: wordsPerMinute}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "inkwell",
		Version: Version,
	}, nil)

	s.registerTools(srv)

	return srv.Run(context.Background(), &mcp.StdioTransport{})
}

func (s *server) registerTools(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_articles",
		Description: "Search published articles by substring match over title and summary.\n\nArgs:\n  query: Search text (case-insensitive substring)\n\nReturns matching articles with slug, title, summary, and publish date.",
	}, s.handleSearch)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_articles",
		Description: "List all published articles, newest first.\n\nReturns slug, title, summary, and publish date for each article.",
	}, s.handleList)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_article",
		Description: "Read one article by slug. Legacy slug aliases are resolved.\n\nArgs:\n  slug: Article slug (as returned by search_articles or list_articles)\n\nReturns the article metadata and full body.",
	}, s.handleGet)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "related_articles",
		Description: "Find articles related to a given one, with scores and reasons.\n\nArgs:\n  slug: Source article slug\n  limit: Max results (default 3, max 20)\n\nReturns ranked related articles.",
	}, s.handleRelated)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "refresh_index",
		Description: "Invalidate the cached search index so the next read re-scans source files. Use after adding or editing articles.",
	}, s.handleRefresh)
}

// Tool input types

type searchInput struct {
	Query string `json:"query" jsonschema:"Search text (case-insensitive substring)"`
}

type getInput struct {
	Slug string `json:"slug" jsonschema:"Article slug"`
}

type relatedInput struct {
	Slug  string `json:"slug" jsonschema:"Source article slug"`
	Limit int    `json:"limit" jsonschema:"Max results (default 3, max 20)"`
}

type emptyInput struct{}

// Tool handlers

func (s *server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	records, err := s.cache.Records()
	if err != nil {
		return textResult(fmt.Sprintf("Index error: %v", err)), nil, nil
	}

	matched := search.Filter(records, input.Query)
	if len(matched) == 0 {
		return textResult("No matching articles."), nil, nil
	}

	data, _ := json.MarshalIndent(matched, "", "  ")
	return textResult(string(data)), nil, nil
}

func (s *server) handleList(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	articles, err := s.cache.Articles()
	if err != nil {
		return textResult(fmt.Sprintf("Index error: %v", err)), nil, nil
	}

	sorted := make([]content.Article, len(articles))
	copy(sorted, articles)
	content.SortByDateDesc(sorted)

	data, _ := json.MarshalIndent(search.Project(sorted), "", "  ")
	return textResult(string(data)), nil, nil
}

func (s *server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, any, error) {
	articles, err := s.cache.Articles()
	if err != nil {
		return textResult(fmt.Sprintf("Index error: %v", err)), nil, nil
	}

	article, ok := content.BySlug(articles, slug.Resolve(input.Slug))
	if !ok {
		return textResult(fmt.Sprintf("No article found for slug: %s", input.Slug)), nil, nil
	}

	data, _ := json.MarshalIndent(map[string]any{
		"slug":        article.Slug,
		"title":       article.Metadata.Title,
		"summary":     article.Metadata.Summary,
		"publishedAt": article.Metadata.PublishedAt,
		"category":    article.Metadata.Category,
		"tags":        article.Metadata.Tags,
		"readingTime": text.ReadingTime(article.Content, s.wordsPerMinute),
		"content":     article.Content,
	}, "", "  ")
	return textResult(string(data)), nil, nil
}

func (s *server) handleRelated(ctx context.Context, req *mcp.CallToolRequest, input relatedInput) (*mcp.CallToolResult, any, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 3
	}
	if limit > 20 {
		limit = 20
	}

	articles, err := s.cache.Articles()
	if err != nil {
		return textResult(fmt.Sprintf("Index error: %v", err)), nil, nil
	}

	article, ok := content.BySlug(articles, slug.Resolve(input.Slug))
	if !ok {
		return textResult(fmt.Sprintf("No article found for slug: %s", input.Slug)), nil, nil
	}

	current := similar.Post{
		Slug:        article.Slug,
		Metadata:    article.Metadata,
		ReadingTime: text.ReadingTime(article.Content, s.wordsPerMinute),
	}
	candidates := make([]similar.Post, 0, len(articles))
	for _, a := range articles {
		candidates = append(candidates, similar.Post{
			Slug:        a.Slug,
			Metadata:    a.Metadata,
			ReadingTime: text.ReadingTime(a.Content, s.wordsPerMinute),
		})
	}

	results := similar.TopSimilar(current, candidates, limit)
	if len(results) == 0 {
		return textResult(fmt.Sprintf("No related articles for: %s", input.Slug)), nil, nil
	}

	data, _ := json.MarshalIndent(results, "", "  ")
	return textResult(string(data)), nil, nil
}

func (s *server) handleRefresh(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	s.cache.Invalidate()
	return textResult("Search index invalidated. Next read re-scans source files."), nil, nil
}

// Helpers

func textResult(t string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: t},
		},
	}
}
