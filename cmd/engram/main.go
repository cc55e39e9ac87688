package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/capture"
	"github.com/fwojciec/engram/extract"
	"github.com/fwojciec/engram/fs"
	"github.com/fwojciec/engram/goquery"
	engramhttp "github.com/fwojciec/engram/http"
	"github.com/fwojciec/engram/rod"
	engramslog "github.com/fwojciec/engram/slog"
	"github.com/fwojciec/engram/sqlite"
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
	SessionService engram.SessionService

	// Fetcher overrides the fetcher built from capture flags.
	Fetcher engram.Fetcher
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("engram"),
		kong.Description("Capture AI chat conversations from web pages into a local archive."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'engram --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var registry engram.PlatformRegistry = goquery.NewDefaultRegistry()
	if logger != nil {
		registry = engramslog.NewLoggingRegistry(registry, logger)
	}
	deps.Registry = registry

	if cmd == "platforms" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ENGRAM_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	if m.SessionService == nil {
		m.SessionService = sqlite.NewSessionService(m.DB)
	}
	deps.DB = m.DB
	deps.Sessions = m.SessionService

	if isCapture(cmd) {
		var extractor engram.Extractor = extract.NewCoordinator()
		if logger != nil {
			extractor = engramslog.NewLoggingExtractor(extractor, logger)
		}
		parser := goquery.NewParser()

		fetcher := m.Fetcher
		if fetcher == nil && len(cli.Capture.URLs) > 0 && cli.Capture.HTML == "" {
			fetcher, err = selectFetcher(ctx, cli.Capture, parser, registry)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to capture live chat apps, or use --http")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
		}
		if fetcher != nil && logger != nil {
			fetcher = engramslog.NewLoggingFetcher(fetcher, logger)
		}

		deps.Capturer = &capture.Capturer{
			Fetcher:     fetcher,
			Parser:      parser,
			Registry:    registry,
			Extractor:   extractor,
			Sessions:    deps.Sessions,
			RateLimiter: capture.NewSiteLimiter(1.0),
			Concurrency: cli.Capture.Concurrency,
		}
		if logger != nil {
			deps.Capturer.Logger = func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			}
		}
	}

	if isExport(cmd) {
		format, err := fs.ParseFormat(cli.Export.Format)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", engram.ErrorMessage(err))
			return err
		}
		deps.Writer = fs.NewWriter(cli.Export.Dir, format)
	}

	return kongCtx.Run(deps)
}

// selectFetcher returns the fetcher forced by flags, or probes the first URL
// to decide between plain HTTP and the browser.
func selectFetcher(ctx context.Context, c CaptureCmd, parser engram.DocumentParser, registry engram.PlatformRegistry) (engram.Fetcher, error) {
	browser := func() (engram.Fetcher, error) {
		return rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
	}
	httpFetcher := engramhttp.NewFetcher(engramhttp.WithTimeout(c.Timeout))

	switch {
	case c.Browser:
		return browser()
	case c.HTTP:
		return httpFetcher, nil
	default:
		return ProbeFetcher(ctx, c.URLs[0], httpFetcher, browser, parser, registry, extract.NewCoordinator())
	}
}

func isCapture(cmd string) bool {
	return cmd == "capture" || cmd == "capture <url>"
}

func isExport(cmd string) bool {
	return cmd == "export" || cmd == "export <id>"
}

func defaultDBPath() string {
	if path := os.Getenv("ENGRAM_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "engram.db"
	}
	dir := filepath.Join(home, ".engram")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "engram.db")
}
