package sitepdf

import (
	"net/url"
	"strings"
	"time"
)

// Format identifies the output artifact type.
type Format string

// Supported output formats.
const (
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Config defaults.
const (
	DefaultMaxHeaderLevel = 3
	DefaultMaxFrameDepth  = 5
	DefaultTOCTitle       = "Table of contents"
	DefaultPaperFormat    = "A4"
)

// Config describes one run. It is built once by the caller and never
// modified by the pipeline.
type Config struct {
	// URLs are the seeds of the pagination chains, walked in order.
	URLs []string

	ContentSelector    string
	PaginationSelector string // empty disables pagination
	ExcludeSelectors   []string

	ExcludeURLs  []string
	ExcludePaths []string

	// RestrictPath keeps only pages whose path starts with
	// RestrictPathPrefix. An empty prefix means the directory of each
	// chain's seed URL.
	RestrictPath       bool
	RestrictPathPrefix string

	// FilterKeyword keeps only pages listing it in <meta name="keywords">.
	FilterKeyword string

	// BaseURL is the origin that requests are remapped from onto the
	// crawled origin. Empty disables remapping.
	BaseURL string

	ExtractIframes bool
	OpenDetails    bool
	MaxHeaderLevel int

	CoverTitle    string
	CoverSubtitle string
	CoverImage    string
	DisableCover  bool
	TOCTitle      string
	DisableTOC    bool
	CSS           string

	Print PrintOptions

	Output         string
	Format         Format
	SkipDuplicates bool

	LaunchArgs      []string
	RenderWait      time.Duration
	ProtocolTimeout time.Duration
	ShowBrowser     bool

	// Rate limits navigations per host in requests per second. Zero means unlimited.
	Rate        float64
	Concurrency int
	MaxPages    int
}

// PrintOptions controls the printed document.
type PrintOptions struct {
	Format          string // paper format, e.g. "A4" or "Letter"
	Margins         Margins
	HeaderTemplate  string
	FooterTemplate  string
	PrintBackground bool
}

// Margins holds CSS-style lengths such as "1cm", "0.5in" or "20px".
type Margins struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

// Validate returns an error if the config cannot drive a run.
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return Errorf(EINVALID, "at least one start URL required")
	}
	for _, raw := range c.URLs {
		if err := validateHTTPURL(raw); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.ContentSelector) == "" {
		return Errorf(EINVALID, "content selector required")
	}
	if c.BaseURL != "" {
		if err := validateHTTPURL(c.BaseURL); err != nil {
			return err
		}
	}
	if c.MaxHeaderLevel < 0 || c.MaxHeaderLevel > 6 {
		return Errorf(EINVALID, "header level must be between 1 and 6, got %d", c.MaxHeaderLevel)
	}
	switch c.Format {
	case "", FormatPDF, FormatHTML, FormatMarkdown:
	default:
		return Errorf(EINVALID, "unknown output format %q", c.Format)
	}
	if c.Output == "" {
		return Errorf(EINVALID, "output path required")
	}
	if c.Rate < 0 {
		return Errorf(EINVALID, "rate must not be negative")
	}
	if err := c.Print.Validate(); err != nil {
		return err
	}
	return nil
}

// HeaderLevel returns the deepest heading level collected for the TOC.
func (c *Config) HeaderLevel() int {
	if c.MaxHeaderLevel == 0 {
		return DefaultMaxHeaderLevel
	}
	return c.MaxHeaderLevel
}

// OutputFormat returns the configured format, defaulting to PDF.
func (c *Config) OutputFormat() Format {
	if c.Format == "" {
		return FormatPDF
	}
	return c.Format
}

// ExtractOptions returns the per-page extraction settings.
func (c *Config) ExtractOptions() ExtractOptions {
	return ExtractOptions{
		ContentSelector:  c.ContentSelector,
		ExcludeSelectors: c.ExcludeSelectors,
		ExtractFrames:    c.ExtractIframes,
		MaxFrameDepth:    DefaultMaxFrameDepth,
		MaxHeaderLevel:   c.HeaderLevel(),
		OpenDetails:      c.OpenDetails,
	}
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q has no host", raw)
	}
	return nil
}
