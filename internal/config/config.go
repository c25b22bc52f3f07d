// Package config provides configuration for the inkwell binary.
// Loads from: CLI flags > env vars > inkwell.toml > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/inkwell-labs/inkwell/internal/slug"
)

// DefaultCacheTTL bounds how long the live search index serves a snapshot
// before rebuilding from source files.
const DefaultCacheTTL = 5 * time.Minute

// Config holds all inkwell configuration, loaded from TOML + env + flags.
type Config struct {
	Content ContentConfig `toml:"content"`
	Server  ServerConfig  `toml:"server"`
	Reading ReadingConfig `toml:"reading"`
	Aliases AliasConfig   `toml:"aliases"`
}

// ContentConfig locates the article source files.
type ContentConfig struct {
	Dir string `toml:"dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
	RefreshToken    string `toml:"refresh_token"`
}

// ReadingConfig tunes reading-time estimation.
type ReadingConfig struct {
	WordsPerMinute int `toml:"words_per_minute"`
}

// AliasConfig extends the built-in slug alias tables. Both tables are data,
// not logic: operators edit them here without touching the normalizer.
type AliasConfig struct {
	Files    map[string]string `toml:"files"`    // source filename (pre-extension) -> canonical slug
	Requests map[string]string `toml:"requests"` // legacy request slug -> canonical slug
}

// ContentOverride is set by the --content global flag.
var ContentOverride string

// ErrNoContentDir is returned when no article source directory can be resolved.
var ErrNoContentDir = fmt.Errorf("no content directory — pass --content, set CONTENT_DIR, or add [content] dir to inkwell.toml")

// DefaultConfig returns a Config with all built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8787",
			CacheTTLMinutes: int(DefaultCacheTTL / time.Minute),
		},
		Reading: ReadingConfig{
			WordsPerMinute: 225,
		},
	}
}

// Load merges all configuration sources: defaults < TOML file < env vars.
// The --content flag is applied on top by ContentDir.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := findConfigFile(); path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		warnUnknownKeys(meta, path)
	}

	if v := os.Getenv("CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("INKWELL_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("INKWELL_REFRESH_TOKEN"); v != "" {
		cfg.Server.RefreshToken = v
	}
	if v := os.Getenv("INKWELL_CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.CacheTTLMinutes = n
		} else {
			fmt.Fprintf(os.Stderr, "inkwell: WARNING: INKWELL_CACHE_TTL=%q is not a positive integer, ignoring\n", v)
		}
	}

	// Merge configured aliases over the built-in tables.
	for filename, canonical := range cfg.Aliases.Files {
		slug.AddFileAlias(filename, canonical)
	}
	for alias, canonical := range cfg.Aliases.Requests {
		slug.AddRequestAlias(alias, canonical)
	}

	return cfg, nil
}

// ContentDir resolves the article source directory: --content flag, then
// env/TOML via Load, then ./posts if it exists.
func (c *Config) ContentDir() (string, error) {
	if ContentOverride != "" {
		return ContentOverride, nil
	}
	if c.Content.Dir != "" {
		return c.Content.Dir, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, "posts")
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, nil
		}
	}
	return "", ErrNoContentDir
}

// CacheTTL returns the live search cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	if c.Server.CacheTTLMinutes <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.Server.CacheTTLMinutes) * time.Minute
}

// findConfigFile looks for inkwell.toml in CWD, then next to the binary.
func findConfigFile() string {
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, "inkwell.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), "inkwell.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// configSuggestions maps common wrong keys to the correct TOML key name.
var configSuggestions = map[string]string{
	"directory":    "dir",
	"content_dir":  "dir",
	"posts_dir":    "dir",
	"address":      "addr",
	"listen":       "addr",
	"ttl":          "cache_ttl_minutes",
	"cache_ttl":    "cache_ttl_minutes",
	"token":        "refresh_token",
	"secret":       "refresh_token",
	"wpm":          "words_per_minute",
	"reading_wpm":  "words_per_minute",
	"file_aliases": "files",
	"slug_aliases": "requests",
}

// warnUnknownKeys prints warnings for unrecognized config keys.
func warnUnknownKeys(meta toml.MetaData, configPath string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}

	fname := filepath.Base(configPath)
	for _, key := range undecoded {
		keyStr := key.String()
		lastPart := key[len(key)-1]

		if suggestion, ok := configSuggestions[lastPart]; ok {
			fmt.Fprintf(os.Stderr, "inkwell: WARNING: unknown key %q in %s — did you mean %q?\n",
				keyStr, fname, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "inkwell: WARNING: unknown key %q in %s (will be ignored)\n",
				keyStr, fname)
		}
	}
}

// Generate writes a commented inkwell.toml to the given directory.
func Generate(dir, contentDir string) error {
	var b strings.Builder
	b.WriteString("# inkwell configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Priority: CLI flags > environment variables > this file > built-in defaults\n")
	b.WriteString("# Environment variables: CONTENT_DIR, INKWELL_ADDR, INKWELL_REFRESH_TOKEN,\n")
	b.WriteString("#   INKWELL_CACHE_TTL\n\n")

	b.WriteString("[content]\n")
	if contentDir != "" {
		fmt.Fprintf(&b, "dir = %q\n\n", contentDir)
	} else {
		b.WriteString("# dir = \"/path/to/posts\"  # defaults to ./posts\n\n")
	}

	b.WriteString("[server]\n")
	b.WriteString("addr = \"127.0.0.1:8787\"\n")
	b.WriteString("cache_ttl_minutes = 5\n")
	b.WriteString("# refresh_token = \"\"  # empty allows unauthenticated cache invalidation\n\n")

	b.WriteString("[reading]\n")
	b.WriteString("words_per_minute = 225\n\n")

	b.WriteString("[aliases]\n")
	b.WriteString("# [aliases.files]\n")
	b.WriteString("# \"Some-Odd-Filename\" = \"published-slug\"\n")
	b.WriteString("# [aliases.requests]\n")
	b.WriteString("# \"legacy-slug\" = \"canonical-slug\"\n")

	return os.WriteFile(filepath.Join(dir, "inkwell.toml"), []byte(b.String()), 0o644)
}
