// Package rod implements sitepdf.Renderer on top of a headless Chrome
// driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements sitepdf.Renderer at compile time.
var _ sitepdf.Renderer = (*Renderer)(nil)

// Default timings.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRenderWait = 0
)

// Renderer owns one headless browser process. Tabs opened from it share the
// process but nothing else.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	timeout    time.Duration
	renderWait time.Duration
	launchArgs []string
	headless   bool

	mu     sync.Mutex
	closed atomic.Bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout bounds every browser operation (navigation, snapshot,
// printing). Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithRenderWait adds a fixed pause after each page load for client side
// rendering to settle.
func WithRenderWait(d time.Duration) Option {
	return func(r *Renderer) {
		r.renderWait = d
	}
}

// WithLaunchArgs passes extra command line flags to the browser, in the
// form "--flag" or "--flag=value".
func WithLaunchArgs(args ...string) Option {
	return func(r *Renderer) {
		r.launchArgs = append(r.launchArgs, args...)
	}
}

// WithHeadless controls whether the browser window is hidden. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// NewRenderer launches a browser. Close must be called when the Renderer is
// no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		timeout:    DefaultTimeout,
		renderWait: DefaultRenderWait,
		headless:   true,
	}
	for _, opt := range opts {
		opt(r)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(r.headless)
	for _, arg := range r.launchArgs {
		name, values, err := ParseLaunchArg(arg)
		if err != nil {
			return nil, err
		}
		l = l.Set(flags.Flag(name), values...)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	r.launcher = l
	return r, nil
}

// NewTab opens a blank page.
func (r *Renderer) NewTab(ctx context.Context) (sitepdf.Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.closed.Load() {
		return nil, sitepdf.Errorf(sitepdf.EINTERNAL, "renderer closed")
	}

	r.mu.Lock()
	page, err := r.browser.Page(proto.TargetCreateTarget{})
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	return &Tab{page: page, timeout: r.timeout, renderWait: r.renderWait}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.launcher == nil {
		return 0
	}
	return r.launcher.PID()
}

// ParseLaunchArg splits "--name=value" into the flag name and its values.
// A bare "--name" has no values.
func ParseLaunchArg(arg string) (string, []string, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(arg), "-")
	if trimmed == "" {
		return "", nil, sitepdf.Errorf(sitepdf.EINVALID, "empty browser flag %q", arg)
	}
	name, value, ok := strings.Cut(trimmed, "=")
	if name == "" {
		return "", nil, sitepdf.Errorf(sitepdf.EINVALID, "browser flag %q has no name", arg)
	}
	if !ok {
		return name, nil, nil
	}
	return name, []string{value}, nil
}
