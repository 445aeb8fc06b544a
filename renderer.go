package sitepdf

import (
	"context"
	"io"
)

// Renderer is a headless browser. Each chain gets its own Tab so that
// navigation state and request interception never leak between chains.
type Renderer interface {
	// NewTab opens a fresh rendering surface.
	NewTab(ctx context.Context) (Tab, error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}

// Tab is one rendering surface of a Renderer.
type Tab interface {
	// Navigate loads url and waits for it to render. Unreachable hosts and
	// timeouts return ENAVIGATION.
	Navigate(ctx context.Context, url string) error

	// Snapshot captures the current document. Embedded frames are captured
	// recursively up to frameDepth levels; zero skips frames.
	Snapshot(ctx context.Context, frameDepth int) (*Snapshot, error)

	// Intercept consults fn for every outgoing request of this tab.
	Intercept(fn InterceptFunc) error

	// PrintPDF replaces the tab's document with html and prints it to w.
	PrintPDF(ctx context.Context, html string, opts PrintOptions, w io.Writer) error

	// Close releases the tab.
	Close() error
}

// Request is an outgoing network request seen by an InterceptFunc.
type Request struct {
	URL          string
	Method       string
	ResourceType string
}

// Action is what happens to an intercepted request.
type Action int

// Interception actions.
const (
	ActionContinue Action = iota
	ActionAbort
	ActionRewrite
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionAbort:
		return "abort"
	case ActionRewrite:
		return "rewrite"
	}
	return "unknown"
}

// Decision is the verdict for one request. URL is set for ActionRewrite.
type Decision struct {
	Action Action
	URL    string
}

// InterceptFunc decides the fate of one request. It must not block.
type InterceptFunc func(req Request) Decision
