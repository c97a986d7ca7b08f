package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Pages       pagemd.PageConverter
	Sitemaps    pagemd.SitemapService
	RateLimiter pagemd.DomainLimiter

	// History is nil when recording is disabled.
	History pagemd.ConversionService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug details to stderr"`
	DB      string `name:"db" env:"PAGEMD_DB" help:"Conversion history database (default: ~/.pagemd/history.db)"`

	Convert ConvertCmd `cmd:"" help:"Convert web pages to Markdown files"`
	History HistoryCmd `cmd:"" help:"List recorded conversions"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URLs    []string `arg:"" optional:"" name:"url" help:"Page URLs to convert"`
	File    string   `short:"f" help:"Read URLs from a file, one per line (# starts a comment)"`
	Output  string   `short:"o" help:"Output file path (single URL only)"`
	Dir     string   `short:"d" env:"PAGEMD_DIR" default:"${output_dir}" help:"Output directory"`
	Sitemap string   `help:"Add the URLs listed by a site's sitemap"`
	Include string   `help:"Only keep sitemap URLs matching this regular expression"`

	Timeout   time.Duration `short:"t" env:"PAGEMD_TIMEOUT" default:"${timeout}" help:"Timeout per page or image request"`
	UserAgent string        `env:"PAGEMD_USER_AGENT" default:"${user_agent}" help:"User-Agent header"`
	Retries   int           `default:"${retries}" help:"Extra attempts after a page timeout or network error"`

	Extractor string `enum:"signature,readability,trafilatura" default:"signature" help:"Content extractor (${enum})"`
	Converter string `enum:"native,commonmark" default:"native" help:"Markdown converter (${enum})"`

	Concurrency      int     `short:"c" default:"1" help:"Pages converted at once"`
	AssetConcurrency int     `default:"${asset_concurrency}" help:"Image downloads at once per page"`
	AssetRate        float64 `default:"${asset_rate}" help:"Image requests per second per host"`
	PageRate         float64 `default:"${page_rate}" help:"Page requests per second per host (0 = unlimited)"`
	NoWebP           bool    `name:"no-webp" help:"Keep WebP images instead of converting them to PNG"`
	NoHistory        bool    `help:"Do not record conversions in the history database"`
}

// Config returns the run configuration described by the flags.
func (c *ConvertCmd) Config() pagemd.Config {
	return pagemd.Config{
		OutputDir:        c.Dir,
		Timeout:          c.Timeout,
		UserAgent:        c.UserAgent,
		AssetConcurrency: c.AssetConcurrency,
		AssetRatePerHost: c.AssetRate,
		PageRatePerHost:  c.PageRate,
		Retries:          c.Retries,
		ConvertWebP:      !c.NoWebP,
	}
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show conversions of this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of conversions to show"`
}
