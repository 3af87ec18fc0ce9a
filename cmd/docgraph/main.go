package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/crawl"
	"github.com/docgraph/docgraph/goquery"
	dochttp "github.com/docgraph/docgraph/http"
	"github.com/docgraph/docgraph/normalize"
	docslog "github.com/docgraph/docgraph/slog"
	"github.com/docgraph/docgraph/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService docgraph.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docgraph"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docgraph --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCGRAPH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.DocumentService = docslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), deps.Logger)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Parser = goquery.NewParser()
	deps.Normalizer = normalize.NewNormalizer()

	// The scheduler doubles as the single-page parse+normalize pipeline,
	// so every command gets one; only crawl needs the network pieces.
	deps.Scheduler = &crawl.Scheduler{
		Parser:     deps.Parser,
		Normalizer: deps.Normalizer,
		Documents:  m.DocumentService,
		Logger:     deps.Logger,
	}

	if cmd == "crawl" {
		fetcher := dochttp.NewFetcher(dochttp.WithTimeout(cli.Crawl.FetchTimeout))
		defer fetcher.Close()

		deps.Scheduler.Fetcher = docslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Scheduler.Limiter = crawl.NewHostLimiter(cli.Crawl.RateLimit)
		if cli.Crawl.Sitemap {
			deps.Scheduler.Seeds = docslog.NewLoggingSeedSource(dochttp.NewSitemapSeeder(), deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCGRAPH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docgraph.db"
	}
	dir := filepath.Join(home, ".docgraph")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docgraph.db")
}
