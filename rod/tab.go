package rod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Tab implements sitepdf.Tab at compile time.
var _ sitepdf.Tab = (*Tab)(nil)

// markFramesJS tags every iframe of a document with its index so that a
// captured frame can be matched to its element in the parent's HTML.
const markFramesJS = `(attr) => {
	document.querySelectorAll('iframe').forEach((f, i) => f.setAttribute(attr, String(i)));
}`

const locationJS = `() => location.href`

// Tab is a single browser page.
type Tab struct {
	page       *rod.Page
	timeout    time.Duration
	renderWait time.Duration

	mu     sync.Mutex
	router *rod.HijackRouter
	closed bool
}

// Navigate loads url and waits for the load event.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	ctx, cancel := t.bound(ctx)
	defer cancel()

	page := t.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return sitepdf.Wrap(sitepdf.ENAVIGATION, err, "navigate to %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return sitepdf.Wrap(sitepdf.ENAVIGATION, err, "wait for %s", url)
	}
	return sleep(ctx, t.renderWait)
}

// Snapshot captures the current document and, up to frameDepth levels,
// the documents of its iframes.
func (t *Tab) Snapshot(ctx context.Context, frameDepth int) (*sitepdf.Snapshot, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()

	return capture(t.page.Context(ctx), frameDepth)
}

func capture(page *rod.Page, frameDepth int) (*sitepdf.Snapshot, error) {
	loc, err := page.Eval(locationJS)
	if err != nil {
		return nil, fmt.Errorf("read location: %w", err)
	}
	snap := &sitepdf.Snapshot{URL: loc.Value.String()}

	if frameDepth > 0 {
		if _, err := page.Eval(markFramesJS, sitepdf.FrameAttr); err != nil {
			return nil, fmt.Errorf("mark frames: %w", err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	snap.HTML = html

	if frameDepth > 0 {
		snap.Frames = captureFrames(page, frameDepth)
	}
	return snap, nil
}

// captureFrames returns the snapshots of every accessible iframe of page.
// Frames the browser will not hand over are left out; the extractor reports
// them.
func captureFrames(page *rod.Page, frameDepth int) map[string]*sitepdf.Snapshot {
	els, err := page.Elements("iframe")
	if err != nil || len(els) == 0 {
		return nil
	}

	frames := make(map[string]*sitepdf.Snapshot, len(els))
	for _, el := range els {
		id, err := el.Attribute(sitepdf.FrameAttr)
		if err != nil || id == nil {
			continue
		}
		frame, err := el.Frame()
		if err != nil {
			continue
		}
		snap, err := capture(frame, frameDepth-1)
		if err != nil {
			continue
		}
		frames[*id] = snap
	}
	return frames
}

// Intercept routes every request of the tab through fn. Calling it again
// replaces the previous function.
func (t *Tab) Intercept(fn sitepdf.InterceptFunc) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return sitepdf.Errorf(sitepdf.EINTERNAL, "tab closed")
	}
	if t.router != nil {
		if err := t.router.Stop(); err != nil {
			return err
		}
	}

	router := t.page.HijackRequests()
	err := router.Add("*", "", func(h *rod.Hijack) {
		req := sitepdf.Request{
			URL:          h.Request.URL().String(),
			Method:       h.Request.Method(),
			ResourceType: string(h.Request.Type()),
		}
		switch d := fn(req); d.Action {
		case sitepdf.ActionAbort:
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		case sitepdf.ActionRewrite:
			h.ContinueRequest(&proto.FetchContinueRequest{URL: d.URL})
		default:
			h.ContinueRequest(&proto.FetchContinueRequest{})
		}
	})
	if err != nil {
		return fmt.Errorf("install request interception: %w", err)
	}
	go router.Run()
	t.router = router
	return nil
}

// PrintPDF loads html into the tab and prints it.
func (t *Tab) PrintPDF(ctx context.Context, html string, opts sitepdf.PrintOptions, w io.Writer) error {
	req, err := PrintRequest(opts)
	if err != nil {
		return err
	}

	ctx, cancel := t.bound(ctx)
	defer cancel()
	page := t.page.Context(ctx)

	wait := page.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	wait()
	if err := sleep(ctx, t.renderWait); err != nil {
		return err
	}

	stream, err := page.PDF(req)
	if err != nil {
		return fmt.Errorf("print pdf: %w", err)
	}
	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Close stops interception and closes the page. Close is safe to call
// multiple times.
func (t *Tab) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var errs []error
	if t.router != nil {
		errs = append(errs, t.router.Stop())
		t.router = nil
	}
	errs = append(errs, t.page.Close())
	return errors.Join(errs...)
}

func (t *Tab) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
