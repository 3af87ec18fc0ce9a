package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/crawl"
	"github.com/docgraph/docgraph/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Documents  docgraph.DocumentService
	Parser     docgraph.PageParser
	Normalizer docgraph.Normalizer
	Scheduler  *crawl.Scheduler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl     CrawlCmd     `cmd:"" help:"Crawl a documentation site into the database"`
	Normalize NormalizeCmd `cmd:"" help:"Re-run parse and normalization on a saved HTML file"`
	Check     CheckCmd     `cmd:"" help:"Check link integrity across stored documents"`
	Docs      DocsCmd      `cmd:"" help:"List stored documents"`
	Export    ExportCmd    `cmd:"" help:"Export stored documents as JSON files"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds        []string      `arg:"" help:"Seed URLs to start crawling from"`
	MaxDepth     int           `short:"d" default:"10" help:"Maximum link-following depth"`
	Delay        time.Duration `default:"1s" help:"Per-worker delay between fetches"`
	Concurrency  int           `short:"c" default:"5" help:"Concurrent fetch limit"`
	FetchTimeout time.Duration `default:"30s" help:"Timeout for each HTTP fetch"`
	RateLimit    float64       `default:"2" help:"Maximum requests per second per host"`
	Sitemap      bool          `help:"Discover additional seeds from the site's sitemaps"`
}

// NormalizeCmd is the "normalize" subcommand.
type NormalizeCmd struct {
	File string `arg:"" help:"HTML file to parse (use - for stdin)"`
	URL  string `arg:"" help:"Source URL the HTML was fetched from"`
	Save bool   `help:"Store the normalized document in the database"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	JSON bool `help:"Print the full report as JSON"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Section string `short:"s" help:"Only show documents in this section"`
	Links   bool   `help:"Show outgoing links per document"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Parent directory for the export"`
	Name string `default:"docgraph-export" help:"Name of the output directory"`
}
