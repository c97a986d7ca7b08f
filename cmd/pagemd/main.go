package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/convert"
	"github.com/fwojciec/pagemd/fs"
	"github.com/fwojciec/pagemd/goquery"
	"github.com/fwojciec/pagemd/htmltomarkdown"
	pmhttp "github.com/fwojciec/pagemd/http"
	"github.com/fwojciec/pagemd/markdown"
	"github.com/fwojciec/pagemd/readability"
	pmslog "github.com/fwojciec/pagemd/slog"
	"github.com/fwojciec/pagemd/sqlite"
	"github.com/fwojciec/pagemd/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db and PAGEMD_DB are unset.
	DBPath string

	DB      *sqlite.DB
	Fetcher pagemd.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close releases the fetcher and the database.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
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

	cfg := pagemd.DefaultConfig()
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemd"),
		kong.Description("Convert web pages to Markdown with local copies of their images"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{
			"output_dir":        cfg.OutputDir,
			"timeout":           cfg.Timeout.String(),
			"user_agent":        cfg.UserAgent,
			"asset_concurrency": strconv.Itoa(cfg.AssetConcurrency),
			"asset_rate":        strconv.FormatFloat(cfg.AssetRatePerHost, 'f', -1, 64),
			"page_rate":         strconv.FormatFloat(cfg.PageRatePerHost, 'f', -1, 64),
			"retries":           strconv.Itoa(cfg.Retries),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagemd --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	command := kongCtx.Command()
	converting := strings.HasPrefix(command, "convert")
	defer m.Close()

	if !converting || !cli.Convert.NoHistory {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: set PAGEMD_DB or --db to use a different database path, or pass --no-history")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		deps.History = sqlite.NewConversionService(m.DB)
	}

	if converting {
		if err := m.wireConvert(deps, &cli.Convert); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", describe(err))
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireConvert builds the conversion pipeline from the convert flags.
func (m *Main) wireConvert(deps *Dependencies, c *ConvertCmd) error {
	cfg := c.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	extractor, err := newExtractor(c.Extractor)
	if err != nil {
		return err
	}
	converter, err := newConverter(c.Converter)
	if err != nil {
		return err
	}

	logger := deps.Logger
	opts := []pmhttp.Option{pmhttp.WithTimeout(cfg.Timeout), pmhttp.WithUserAgent(cfg.UserAgent)}
	m.Fetcher = pmslog.NewLoggingFetcher(pmhttp.NewFetcher(opts...), logger)

	deps.Pages = &convert.Pipeline{
		Fetcher:   m.Fetcher,
		Extractor: pmslog.NewLoggingExtractor(extractor, logger),
		Converter: converter,
		Assets: &convert.Materializer{
			Images:      pmslog.NewLoggingImageFetcher(pmhttp.NewImageFetcher(opts...), logger),
			Store:       fs.NewAssetStore(),
			RateLimiter: convert.NewDomainLimiter(cfg.AssetRatePerHost),
			Concurrency: cfg.AssetConcurrency,
			ConvertWebP: cfg.ConvertWebP,
			Logger:      logger,
		},
		Writer:      fs.NewWriter(),
		RetryDelays: convert.RetryDelays(cfg.Retries),
		Logger:      logger,
	}
	deps.Sitemaps = pmslog.NewLoggingSitemapService(pmhttp.NewSitemapService(opts...), logger)
	deps.RateLimiter = convert.NewDomainLimiter(cfg.PageRatePerHost)
	return nil
}

func newExtractor(name string) (pagemd.Extractor, error) {
	switch name {
	case "", "signature":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	}
	return nil, pagemd.Errorf(pagemd.EINVALID, "unknown extractor %q", name)
}

func newConverter(name string) (pagemd.Converter, error) {
	switch name {
	case "", "native":
		return markdown.NewConverter(), nil
	case "commonmark":
		return htmltomarkdown.NewConverter(), nil
	}
	return nil, pagemd.Errorf(pagemd.EINVALID, "unknown converter %q", name)
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEMD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagemd.db"
	}
	dir := filepath.Join(home, ".pagemd")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}

// describe returns a one-line reason for err suitable for the terminal.
func describe(err error) string {
	if pagemd.ErrorCode(err) == pagemd.EINTERNAL {
		return err.Error()
	}
	return pagemd.ErrorMessage(err)
}
