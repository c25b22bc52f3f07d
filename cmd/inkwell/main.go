// Package main is the entrypoint for the inkwell CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/content"
	mcpserver "github.com/inkwell-labs/inkwell/internal/mcp"
	"github.com/inkwell-labs/inkwell/internal/search"
	"github.com/inkwell-labs/inkwell/internal/similar"
	"github.com/inkwell-labs/inkwell/internal/slug"
	"github.com/inkwell-labs/inkwell/internal/text"
	"github.com/inkwell-labs/inkwell/internal/watcher"
	"github.com/inkwell-labs/inkwell/internal/web"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "inkwell",
		Short: "Content ingestion and relevance pipeline",
		Long:  "inkwell — parses article sources, resolves slugs, scores related articles, and serves the search index.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(buildIndexCmd())
	root.AddCommand(postsCmd())
	root.AddCommand(relatedCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(headingsCmd())
	root.AddCommand(mcpCmd())

	// Global --content flag
	root.PersistentFlags().StringVar(&config.ContentOverride, "content", "", "Article source directory (overrides config)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inkwell version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("inkwell %s\n", Version)
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented inkwell.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if err := config.Generate(cwd, config.ContentOverride); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Println("Wrote inkwell.toml")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search index and article API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadSetup()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}

			cache := search.NewCache(loader, cfg.CacheTTL())

			// Fail at startup, not on first request, when content is broken.
			if _, err := cache.Records(); err != nil {
				return userError(fmt.Sprintf("Content failed to load: %v", err),
					"Fix the article frontmatter before serving")
			}

			if watch {
				go func() {
					if err := watcher.Watch(loader.Dir, cache); err != nil {
						fmt.Fprintf(os.Stderr, "  [WARN] watch disabled: %v\n", err)
					}
				}()
			}

			srv := web.NewServer(cache, cfg.Server.RefreshToken, cfg.Reading.WordsPerMinute, Version)
			return web.Serve(addr, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Invalidate the cache when article files change")
	return cmd
}

func buildIndexCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build-index",
		Short: "Write the static search-index.json artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, err := loadSetup()
			if err != nil {
				return err
			}

			n, err := search.WriteStatic(loader, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Generated %s with %d posts.\n", out, n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "public/search-index.json", "Output path")
	return cmd
}

func postsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List the corpus, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadSetup()
			if err != nil {
				return err
			}

			articles, err := loader.Load()
			if err != nil {
				return err
			}
			content.SortByDateDesc(articles)

			type row struct {
				Slug        string `json:"slug"`
				Title       string `json:"title"`
				PublishedAt string `json:"publishedAt"`
				Date        string `json:"date"`
				ReadingTime int    `json:"readingTime"`
			}
			rows := make([]row, 0, len(articles))
			for _, a := range articles {
				rows = append(rows, row{
					Slug:        a.Slug,
					Title:       a.Metadata.Title,
					PublishedAt: a.Metadata.PublishedAt,
					Date:        text.FormatDate(a.Metadata.PublishedAt, true),
					ReadingTime: text.ReadingTime(a.Content, cfg.Reading.WordsPerMinute),
				})
			}
			return printJSON(rows)
		},
	}
}

func relatedCmd() *cobra.Command {
	var limit int
	var explain bool
	cmd := &cobra.Command{
		Use:   "related <slug>",
		Short: "Rank articles related to the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadSetup()
			if err != nil {
				return err
			}

			articles, err := loader.Load()
			if err != nil {
				return err
			}

			article, ok := content.BySlug(articles, slug.Resolve(args[0]))
			if !ok {
				return userError(fmt.Sprintf("No article found for slug %q", args[0]),
					"Run 'inkwell posts' to list available slugs")
			}

			wpm := cfg.Reading.WordsPerMinute
			current := toPost(article, wpm)
			candidates := make([]similar.Post, 0, len(articles))
			for _, a := range articles {
				candidates = append(candidates, toPost(a, wpm))
			}

			results := similar.TopSimilar(current, candidates, limit)
			if !explain {
				return printJSON(results)
			}

			type explained struct {
				Slug      string            `json:"slug"`
				Breakdown similar.Breakdown `json:"breakdown"`
			}
			out := make([]explained, 0, len(results))
			for _, res := range results {
				out = append(out, explained{
					Slug:      res.Post.Slug,
					Breakdown: similar.Explain(current, res.Post),
				})
			}
			return printJSON(out)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 3, "Maximum number of results")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show sub-score breakdowns")
	return cmd
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <slug-or-filename>",
		Short: "Show how an identifier resolves through the alias tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config for its alias-table side effects.
			if _, err := config.Load(); err != nil {
				return err
			}
			return printJSON(map[string]string{
				"input":     args[0],
				"slugified": slug.Slugify(args[0]),
				"fileSlug":  slug.CleanSlug(args[0]),
				"resolved":  slug.Resolve(args[0]),
			})
		},
	}
}

func headingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "headings <slug>",
		Short: "Extract the table of contents for an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, err := loadSetup()
			if err != nil {
				return err
			}

			articles, err := loader.Load()
			if err != nil {
				return err
			}

			article, ok := content.BySlug(articles, slug.Resolve(args[0]))
			if !ok {
				return userError(fmt.Sprintf("No article found for slug %q", args[0]),
					"Run 'inkwell posts' to list available slugs")
			}
			return printJSON(text.Headings(article.Content))
		},
	}
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP stdio server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadSetup()
			if err != nil {
				return err
			}
			mcpserver.Version = Version
			cache := search.NewCache(loader, cfg.CacheTTL())
			return mcpserver.Serve(cache, cfg.Reading.WordsPerMinute)
		},
	}
}

// loadSetup loads config and builds the corpus loader shared by every command.
func loadSetup() (*config.Config, *content.Loader, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	dir, err := cfg.ContentDir()
	if err != nil {
		return nil, nil, err
	}
	return cfg, content.NewLoader(dir), nil
}

func toPost(a content.Article, wordsPerMinute int) similar.Post {
	return similar.Post{
		Slug:        a.Slug,
		Metadata:    a.Metadata,
		ReadingTime: text.ReadingTime(a.Content, wordsPerMinute),
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// ---------- error helpers ----------

type inkwellError struct {
	message string
	hint    string
}

func (e *inkwellError) Error() string {
	return fmt.Sprintf("%s\n  Hint: %s", e.message, e.hint)
}

func userError(message, hint string) error {
	return &inkwellError{message: message, hint: hint}
}
