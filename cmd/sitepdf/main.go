package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/fs"
	"github.com/fwojciec/sitepdf/goquery"
	"github.com/fwojciec/sitepdf/html"
	"github.com/fwojciec/sitepdf/htmltomarkdown"
	sitepdfhttp "github.com/fwojciec/sitepdf/http"
	"github.com/fwojciec/sitepdf/rod"
	sitepdfslog "github.com/fwojciec/sitepdf/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPaths are YAML files read before flags are applied.
	ConfigPaths []string

	// NewRenderer starts the browser. Replaced in tests.
	NewRenderer func(cfg *sitepdf.Config) (sitepdf.Renderer, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: DefaultConfigPaths(),
		NewRenderer: newRodRenderer,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitepdf"),
		kong.Description("Render paginated web documentation into a single PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLLoader, m.ConfigPaths...),
		vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no start URL provided. Run 'sitepdf --help' for usage")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := cli.SitepdfConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	logger := newLogger(stderr, cli.Verbose, cli.Quiet)

	renderer, err := m.NewRenderer(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer renderer.Close()

	var prog *progress
	gen := &crawl.Generator{
		Renderer:  sitepdfslog.NewLoggingRenderer(renderer, logger),
		Parser:    goquery.NewParser(),
		Assembler: html.NewAssembler(),
		Images:    sitepdfslog.NewLoggingImageFetcher(sitepdfhttp.NewImageFetcher(sitepdfhttp.WithTimeout(cfg.ProtocolTimeout)), logger),
		Converter: htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cfg.URLs[0]), htmltomarkdown.WithoutImages()),
		Limiter:   crawl.NewDomainLimiter(cfg.Rate, 1),
		Detector:  goquery.NewDetector(),
		Logger:    logger,
	}
	if !cli.Quiet {
		prog = newProgress(stderr)
		gen.Progress = prog.Handle
		prog.Start()
	}

	result, err := gen.Generate(ctx, cfg, fs.NewFileOutput(cfg.Output))
	if prog != nil {
		prog.Stop()
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s (%d pages from %d chains, %d bytes)\n",
		cfg.Output, result.Fragments, result.Chains, result.Bytes)
	return nil
}

// newLogger returns a slog.Logger backed by charmbracelet/log.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := log.InfoLevel
	switch {
	case verbose:
		level = log.DebugLevel
	case quiet:
		level = log.WarnLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          AppName,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

func newRodRenderer(cfg *sitepdf.Config) (sitepdf.Renderer, error) {
	return rod.NewRenderer(
		rod.WithTimeout(cfg.ProtocolTimeout),
		rod.WithRenderWait(cfg.RenderWait),
		rod.WithLaunchArgs(cfg.LaunchArgs...),
		rod.WithHeadless(!cfg.ShowBrowser),
	)
}
