package crawl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Walker follows one pagination chain from a seed URL, one page at a time,
// and collects the extracted content of every admitted page.
type Walker struct {
	Tab                sitepdf.Tab
	Parser             sitepdf.PageParser
	Admission          *Admission
	IDs                sitepdf.IDAllocator
	Options            sitepdf.ExtractOptions
	PaginationSelector string

	// FrameDepth is passed to Tab.Snapshot. Zero skips frame capture.
	FrameDepth int

	// Limiter, when set, is waited on before every navigation.
	Limiter sitepdf.DomainLimiter

	// MaxPages caps the number of navigations. Zero means no cap.
	MaxPages int

	// Detector, when set, names the page's framework when the content
	// selector matches nothing so the log can suggest a preset.
	Detector sitepdf.FrameworkDetector

	Logger   *slog.Logger
	Progress ProgressFunc
}

// Walk visits seed and every page reachable through the pagination
// selector, in order, until the chain ends. Revisiting a URL ends the chain
// normally. Navigation failures abort the chain.
func (w *Walker) Walk(ctx context.Context, seed string) (*sitepdf.Chain, error) {
	logger := w.logger()
	visited := NewVisitedSet()
	chain := &sitepdf.Chain{Seed: seed}

	current := seed
	for {
		if visited.Has(current) {
			logger.Debug("pagination cycle", "url", current)
			chain.Stop = sitepdf.StopCycle
			break
		}
		if w.MaxPages > 0 && chain.Visited >= w.MaxPages {
			logger.Debug("page limit reached", "url", current, "max", w.MaxPages)
			chain.Stop = sitepdf.StopMaxPages
			break
		}
		visited.Add(current)

		snap, err := w.load(ctx, current)
		if err != nil {
			return chain, err
		}
		chain.Visited++

		frag, err := w.collect(current, snap)
		if err != nil {
			return chain, err
		}
		if frag != nil {
			chain.Fragments = append(chain.Fragments, *frag)
		}

		next, err := w.Parser.NextLink(snap, w.PaginationSelector)
		if err != nil {
			return chain, err
		}
		if next == "" {
			chain.Stop = sitepdf.StopNoNextLink
			break
		}
		if sitepdf.IsPrintTarget(next) {
			logger.Debug("next link is a pdf", "url", next)
			chain.Stop = sitepdf.StopPrintTarget
			break
		}
		current = next
	}

	logger.Debug("chain finished",
		"seed", seed,
		"visited", chain.Visited,
		"fragments", len(chain.Fragments),
		"stop", chain.Stop.String(),
	)
	return chain, nil
}

// load navigates to rawURL and captures the rendered page.
func (w *Walker) load(ctx context.Context, rawURL string) (*sitepdf.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.Limiter != nil {
		if err := w.Limiter.Wait(ctx, host(rawURL)); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	if err := w.Tab.Navigate(ctx, rawURL); err != nil {
		return nil, navigationError(rawURL, err)
	}
	snap, err := w.Tab.Snapshot(ctx, w.FrameDepth)
	if err != nil {
		return nil, navigationError(rawURL, err)
	}
	if snap.URL == "" {
		snap.URL = rawURL
	}
	w.logger().Debug("page loaded", "url", rawURL, "duration", time.Since(start))
	return snap, nil
}

// collect runs admission and extraction for one page. requested is the URL
// that was navigated to; the browser may report it normalized or redirected
// in snap.URL, and the page must pass admission under both. A nil fragment
// means the page contributes nothing.
func (w *Walker) collect(requested string, snap *sitepdf.Snapshot) (*sitepdf.PageFragment, error) {
	logger := w.logger()

	if w.Admission != nil {
		keywords, err := w.Parser.Keywords(snap)
		if err != nil {
			return nil, err
		}
		kept, reason := w.Admission.Check(requested, keywords)
		if kept && snap.URL != requested {
			kept, reason = w.Admission.Check(snap.URL, keywords)
		}
		if !kept {
			logger.Debug("page excluded", "url", snap.URL, "reason", reason)
			w.emit(ProgressEvent{Type: ProgressExcluded, URL: snap.URL, Reason: reason})
			return nil, nil
		}
	}

	frag, err := w.Parser.Extract(snap, w.Options, w.IDs)
	if sitepdf.ErrorCode(err) == sitepdf.ESELECTOR {
		attrs := []any{"url", snap.URL, "selector", w.Options.ContentSelector}
		if w.Detector != nil {
			if f := w.Detector.Detect(snap.HTML); sitepdf.HasPreset(f) {
				attrs = append(attrs, "hint", "page looks like "+string(f)+", try --preset "+string(f))
			}
		}
		logger.Warn("content selector matched nothing", attrs...)
		w.emit(ProgressEvent{Type: ProgressEmpty, URL: snap.URL, Error: err})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for _, ferr := range frag.FrameErrors {
		logger.Warn("embedded frame skipped", "url", snap.URL, "error", ferr)
	}
	w.emit(ProgressEvent{Type: ProgressVisited, URL: snap.URL, Title: frag.Title})
	return frag, nil
}

func (w *Walker) emit(event ProgressEvent) {
	if w.Progress != nil {
		w.Progress(event)
	}
}

func (w *Walker) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.Logger
}

func navigationError(rawURL string, err error) error {
	if code := sitepdf.ErrorCode(err); code == sitepdf.ENAVIGATION {
		return err
	}
	return sitepdf.Wrap(sitepdf.ENAVIGATION, err, "navigate to %s", rawURL)
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
