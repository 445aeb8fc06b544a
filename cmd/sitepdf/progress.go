package main

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/sitepdf/crawl"
)

// progress shows a spinner with the number of pages processed and the
// page being worked on.
type progress struct {
	spinner  *spinner.Spinner
	pages    int
	excluded int
	chains   int
}

func newProgress(w io.Writer) *progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " starting browser"
	return &progress{spinner: s}
}

func (p *progress) Start() { p.spinner.Start() }

func (p *progress) Stop() { p.spinner.Stop() }

// Handle is a crawl.ProgressFunc.
func (p *progress) Handle(event crawl.ProgressEvent) {
	p.spinner.Lock()
	defer p.spinner.Unlock()

	switch event.Type {
	case crawl.ProgressVisited:
		p.pages++
	case crawl.ProgressExcluded, crawl.ProgressEmpty:
		p.excluded++
	case crawl.ProgressChainDone:
		p.chains++
	case crawl.ProgressWriting:
		p.spinner.Suffix = fmt.Sprintf(" writing %s", event.URL)
		return
	}
	p.spinner.Suffix = fmt.Sprintf(" %d pages, %d skipped  %s", p.pages, p.excluded, truncateURL(event.URL, 40))
}

// truncateURL shortens a URL for display by showing only the path.
// This makes progress more useful when many URLs share the same host prefix.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
