package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitepdf"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs []string `arg:"" optional:"" name:"url" help:"Start URLs; each one begins a pagination chain"`
	URL  []string `name:"start-url" sep:"none" placeholder:"URL" help:"Additional start URL (repeatable, usable from config files)"`

	Config kong.ConfigFlag `short:"C" placeholder:"PATH" help:"Load flag values from a YAML file"`
	Preset string          `help:"Fill in selectors for a documentation framework (${presets})"`

	// Content
	ContentSelector    string   `short:"s" help:"CSS selector of the main content of every page"`
	PaginationSelector string   `short:"n" name:"next-selector" help:"CSS selector of the link to the next page; empty disables pagination"`
	ExcludeSelector    []string `short:"x" sep:"none" help:"CSS selector of elements to drop from the content (repeatable)"`
	ExtractIframes     bool     `help:"Inline the content of embedded frames"`
	OpenDetails        bool     `help:"Expand every <details> element"`
	MaxHeaderLevel     int      `default:"3" help:"Deepest heading level listed in the table of contents (1-6)"`

	// Admission
	ExcludeURL         []string `sep:"none" help:"Exact URL whose content is skipped (repeatable)"`
	ExcludePath        []string `sep:"none" help:"Skip pages whose path contains this text (repeatable)"`
	RestrictPath       bool     `help:"Only keep pages under the start URL's directory"`
	RestrictPathPrefix string   `help:"Path prefix used by --restrict-path instead of the start URL's directory"`
	FilterKeyword      string   `help:"Only keep pages whose keywords meta tag lists this keyword"`
	BaseURL            string   `help:"Canonical origin of the site; its requests are redirected to the crawled origin"`

	// Document
	CoverTitle    string `help:"Cover page title (defaults to the first page title)"`
	CoverSubtitle string `help:"Cover page subtitle"`
	CoverImage    string `placeholder:"URL" help:"Cover page image"`
	NoCover       bool   `help:"Omit the cover page"`
	TOCTitle      string `name:"toc-title" default:"${toc_title}" help:"Table of contents heading"`
	NoTOC         bool   `name:"no-toc" help:"Omit the table of contents"`
	CSS           string `name:"css" help:"Extra CSS added to the document"`
	CSSFile       string `name:"css-file" type:"existingfile" help:"File with extra CSS added to the document"`

	// Printing
	PaperFormat     string `default:"${paper_format}" help:"Paper format: letter, legal, tabloid, ledger, a0-a6"`
	MarginTop       string `help:"Top margin (px, in, cm, mm)"`
	MarginRight     string `help:"Right margin (px, in, cm, mm)"`
	MarginBottom    string `help:"Bottom margin (px, in, cm, mm)"`
	MarginLeft      string `help:"Left margin (px, in, cm, mm)"`
	HeaderTemplate  string `help:"HTML template of the page header"`
	FooterTemplate  string `help:"HTML template of the page footer"`
	PrintBackground bool   `help:"Print background colors and images"`

	// Output
	Output         string         `short:"o" default:"site.pdf" help:"Output file"`
	Format         sitepdf.Format `short:"f" enum:"pdf,html,markdown" default:"pdf" help:"Output format (pdf, html, markdown)"`
	SkipDuplicates bool           `help:"Drop pages whose content repeats an earlier page"`

	// Browser
	BrowserArg []string      `sep:"none" placeholder:"--FLAG[=VALUE]" help:"Extra browser command line flag (repeatable)"`
	RenderWait time.Duration `default:"0s" help:"Extra wait after each page load"`
	Timeout    time.Duration `short:"t" default:"30s" help:"Timeout per browser operation"`
	NoHeadless bool          `help:"Show the browser window"`

	// Pacing
	Rate        float64 `help:"Maximum page loads per second per host; 0 means unlimited"`
	Concurrency int     `short:"c" default:"1" help:"Start URLs walked at the same time"`
	MaxPages    int     `help:"Stop each chain after this many pages; 0 means no limit"`

	Verbose bool `short:"v" help:"Log every browser operation"`
	Quiet   bool `short:"q" help:"Only log warnings and errors; no progress spinner"`
}

// vars are interpolated into the CLI's struct tags.
func vars() kong.Vars {
	return kong.Vars{
		"presets":      strings.Join(sitepdf.PresetNames(), ", "),
		"toc_title":    sitepdf.DefaultTOCTitle,
		"paper_format": sitepdf.DefaultPaperFormat,
	}
}

// SitepdfConfig builds the generator configuration from parsed flags.
func (c *CLI) SitepdfConfig() (*sitepdf.Config, error) {
	cfg := &sitepdf.Config{
		URLs:               append(append([]string{}, c.URLs...), c.URL...),
		ContentSelector:    c.ContentSelector,
		PaginationSelector: c.PaginationSelector,
		ExcludeSelectors:   c.ExcludeSelector,
		ExcludeURLs:        c.ExcludeURL,
		ExcludePaths:       c.ExcludePath,
		RestrictPath:       c.RestrictPath || c.RestrictPathPrefix != "",
		RestrictPathPrefix: c.RestrictPathPrefix,
		FilterKeyword:      c.FilterKeyword,
		BaseURL:            c.BaseURL,
		ExtractIframes:     c.ExtractIframes,
		OpenDetails:        c.OpenDetails,
		MaxHeaderLevel:     c.MaxHeaderLevel,
		CoverTitle:         c.CoverTitle,
		CoverSubtitle:      c.CoverSubtitle,
		CoverImage:         c.CoverImage,
		DisableCover:       c.NoCover,
		TOCTitle:           c.TOCTitle,
		DisableTOC:         c.NoTOC,
		CSS:                c.CSS,
		Print: sitepdf.PrintOptions{
			Format: c.PaperFormat,
			Margins: sitepdf.Margins{
				Top:    c.MarginTop,
				Right:  c.MarginRight,
				Bottom: c.MarginBottom,
				Left:   c.MarginLeft,
			},
			HeaderTemplate:  c.HeaderTemplate,
			FooterTemplate:  c.FooterTemplate,
			PrintBackground: c.PrintBackground,
		},
		Output:          c.Output,
		Format:          c.Format,
		SkipDuplicates:  c.SkipDuplicates,
		LaunchArgs:      c.BrowserArg,
		RenderWait:      c.RenderWait,
		ProtocolTimeout: c.Timeout,
		ShowBrowser:     c.NoHeadless,
		Rate:            c.Rate,
		Concurrency:     c.Concurrency,
		MaxPages:        c.MaxPages,
	}

	if c.CSSFile != "" {
		data, err := os.ReadFile(c.CSSFile)
		if err != nil {
			return nil, fmt.Errorf("read css file: %w", err)
		}
		if cfg.CSS != "" {
			cfg.CSS += "\n"
		}
		cfg.CSS += string(data)
	}

	if c.Preset != "" {
		preset, err := sitepdf.LookupPreset(c.Preset)
		if err != nil {
			return nil, err
		}
		preset.Apply(cfg)
	}

	return cfg, nil
}
