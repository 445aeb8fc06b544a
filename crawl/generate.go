// Package crawl walks pagination chains in a headless browser and turns the
// collected pages into a single document.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Generator runs the whole pipeline: walk every seed chain, assemble the
// kept fragments and write the result in the requested format.
type Generator struct {
	Renderer  sitepdf.Renderer
	Parser    sitepdf.PageParser
	Assembler sitepdf.Assembler
	Images    sitepdf.ImageFetcher // optional, needed for cover images
	Converter sitepdf.Converter    // needed for markdown output
	Limiter   sitepdf.DomainLimiter
	Detector  sitepdf.FrameworkDetector // optional, improves empty page warnings
	Logger    *slog.Logger
	Progress  ProgressFunc
}

// Result holds the outcome of a run.
type Result struct {
	RunID     string
	Chains    int
	Visited   int
	Fragments int
	Skipped   int // duplicate fragments dropped
	Headers   int
	Rewrites  int
	Bytes     int64
}

// Generate produces the document described by cfg and writes it to out.
// out is committed only when every step succeeded and aborted otherwise.
func (g *Generator) Generate(ctx context.Context, cfg *sitepdf.Config, out sitepdf.Output) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := g.logger().With("run", result.RunID)
	start := time.Now()
	logger.Info("run started", "seeds", len(cfg.URLs), "format", string(cfg.OutputFormat()))

	r := &run{gen: g, cfg: cfg, logger: logger, ids: sitepdf.NewHeaderIDAllocator()}

	chains, err := r.walkAll(ctx)
	if err != nil {
		return nil, err
	}

	doc := r.document(ctx, chains, result)

	html, err := g.Assembler.Assemble(doc)
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}

	r.emit(ProgressEvent{Type: ProgressWriting, URL: cfg.Output})
	n, err := r.write(ctx, html, out)
	if err != nil {
		return nil, err
	}
	result.Bytes = n
	result.Rewrites = r.rewrites()

	logger.Info("run finished",
		"chains", result.Chains,
		"visited", result.Visited,
		"fragments", result.Fragments,
		"bytes", result.Bytes,
		"duration", time.Since(start),
	)
	return result, nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

// run holds the state of one Generate call.
type run struct {
	gen    *Generator
	cfg    *sitepdf.Config
	logger *slog.Logger
	ids    *sitepdf.HeaderIDAllocator

	mu       sync.Mutex
	policies []*InterceptPolicy
}

// walkAll walks every seed chain and returns the chains in seed order.
func (r *run) walkAll(ctx context.Context) ([]*sitepdf.Chain, error) {
	chains := make([]*sitepdf.Chain, len(r.cfg.URLs))

	if r.cfg.Concurrency <= 1 {
		for i, seed := range r.cfg.URLs {
			chain, err := r.walkChain(ctx, seed)
			if err != nil {
				return nil, err
			}
			chains[i] = chain
		}
		return chains, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, seed := range r.cfg.URLs {
		g.Go(func() error {
			chain, err := r.walkChain(gctx, seed)
			if err != nil {
				return err
			}
			chains[i] = chain
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chains, nil
}

// walkChain walks one seed on its own tab.
func (r *run) walkChain(ctx context.Context, seed string) (*sitepdf.Chain, error) {
	policy, err := NewInterceptPolicy(r.cfg.BaseURL, seed)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.policies = append(r.policies, policy)
	r.mu.Unlock()

	tab, err := r.gen.Renderer.NewTab(ctx)
	if err != nil {
		return nil, fmt.Errorf("open tab for %s: %w", seed, err)
	}
	defer func() {
		if err := tab.Close(); err != nil {
			r.logger.Warn("failed to close tab", "seed", seed, "error", err)
		}
	}()

	if err := tab.Intercept(policy.Decide); err != nil {
		return nil, fmt.Errorf("intercept requests: %w", err)
	}

	frameDepth := 0
	if r.cfg.ExtractIframes {
		frameDepth = sitepdf.DefaultMaxFrameDepth
	}

	w := &Walker{
		Tab:                tab,
		Parser:             r.gen.Parser,
		Admission:          NewAdmission(r.cfg, seed),
		IDs:                r.ids,
		Options:            r.cfg.ExtractOptions(),
		PaginationSelector: r.cfg.PaginationSelector,
		FrameDepth:         frameDepth,
		Limiter:            r.gen.Limiter,
		MaxPages:           r.cfg.MaxPages,
		Detector:           r.gen.Detector,
		Logger:             r.logger.With("seed", seed),
		Progress:           r.emit,
	}
	chain, err := w.Walk(ctx, seed)
	if err != nil {
		return nil, err
	}
	r.emit(ProgressEvent{Type: ProgressChainDone, URL: seed, Reason: chain.Stop.String()})
	return chain, nil
}

// document concatenates the chains into the assembler's input.
func (r *run) document(ctx context.Context, chains []*sitepdf.Chain, result *Result) *sitepdf.Document {
	doc := &sitepdf.Document{CSS: r.cfg.CSS}
	seen := make(map[string]struct{})

	for _, chain := range chains {
		result.Chains++
		result.Visited += chain.Visited
		for _, frag := range chain.Fragments {
			if r.cfg.SkipDuplicates {
				if _, dup := seen[frag.ContentHash]; dup {
					r.logger.Debug("duplicate content skipped", "url", frag.SourceURL)
					result.Skipped++
					continue
				}
				seen[frag.ContentHash] = struct{}{}
			}
			doc.Fragments = append(doc.Fragments, frag)
			doc.Headers = append(doc.Headers, frag.Headers...)
		}
	}
	result.Fragments = len(doc.Fragments)
	result.Headers = len(doc.Headers)

	doc.Title = r.cfg.CoverTitle
	if doc.Title == "" && len(doc.Fragments) > 0 {
		doc.Title = doc.Fragments[0].Title
	}

	if !r.cfg.DisableCover {
		doc.Cover = &sitepdf.Cover{
			Title:    doc.Title,
			Subtitle: r.cfg.CoverSubtitle,
			Image:    r.coverImage(ctx),
		}
	}
	if !r.cfg.DisableTOC {
		title := r.cfg.TOCTitle
		if title == "" {
			title = sitepdf.DefaultTOCTitle
		}
		doc.TOC = &sitepdf.TOC{Title: title}
	}
	return doc
}

// coverImage fetches the cover image. A failed fetch leaves the cover
// without an image.
func (r *run) coverImage(ctx context.Context) *sitepdf.Image {
	if r.cfg.CoverImage == "" || r.gen.Images == nil {
		return nil
	}
	img, err := r.gen.Images.FetchImage(ctx, r.cfg.CoverImage)
	if err != nil {
		r.logger.Warn("cover image unavailable", "url", r.cfg.CoverImage, "error", err)
		return nil
	}
	return img
}

// write renders html in the configured format into out.
func (r *run) write(ctx context.Context, html string, out sitepdf.Output) (n int64, err error) {
	wc, err := out.Create()
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if aerr := out.Abort(); aerr != nil {
			r.logger.Warn("failed to discard output", "error", aerr)
		}
	}()

	cw := &countingWriter{w: wc}
	if err = r.render(ctx, html, cw); err != nil {
		_ = wc.Close()
		return 0, err
	}
	if err = wc.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}
	if cw.n == 0 {
		err = sitepdf.Errorf(sitepdf.EINTERNAL, "rendered document is empty")
		return 0, err
	}
	if err = out.Commit(); err != nil {
		return 0, fmt.Errorf("commit output: %w", err)
	}
	return cw.n, nil
}

func (r *run) render(ctx context.Context, html string, w io.Writer) error {
	switch r.cfg.OutputFormat() {
	case sitepdf.FormatHTML:
		_, err := io.WriteString(w, html)
		return err
	case sitepdf.FormatMarkdown:
		if r.gen.Converter == nil {
			return sitepdf.Errorf(sitepdf.EINVALID, "markdown output needs a converter")
		}
		md, err := r.gen.Converter.Convert(html)
		if err != nil {
			return fmt.Errorf("convert to markdown: %w", err)
		}
		_, err = io.WriteString(w, md)
		return err
	default:
		return r.printPDF(ctx, html, w)
	}
}

// printPDF prints html on a fresh tab. The tab carries the first seed's
// interception policy so assets referenced by the merged document resolve
// the same way they did during the walk.
func (r *run) printPDF(ctx context.Context, html string, w io.Writer) error {
	tab, err := r.gen.Renderer.NewTab(ctx)
	if err != nil {
		return fmt.Errorf("open print tab: %w", err)
	}
	defer func() {
		if err := tab.Close(); err != nil {
			r.logger.Warn("failed to close print tab", "error", err)
		}
	}()

	policy, err := NewInterceptPolicy(r.cfg.BaseURL, r.cfg.URLs[0])
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.policies = append(r.policies, policy)
	r.mu.Unlock()
	if err := tab.Intercept(policy.Decide); err != nil {
		return fmt.Errorf("intercept requests: %w", err)
	}

	opts := r.cfg.Print
	if opts.Format == "" {
		opts.Format = sitepdf.DefaultPaperFormat
	}
	return tab.PrintPDF(ctx, html, opts, w)
}

func (r *run) emit(event ProgressEvent) {
	if r.gen.Progress == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen.Progress(event)
}

func (r *run) rewrites() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, p := range r.policies {
		total += p.Rewrites()
	}
	return total
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
