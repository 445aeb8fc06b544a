package crawl

import (
	"strings"
	"sync/atomic"

	"github.com/fwojciec/sitepdf"
)

// InterceptPolicy decides the fate of every request a tab makes while a
// chain is walked. PDF requests are aborted. When the site's canonical base
// URL lives on a different origin than the one being crawled, requests to
// the base origin are rewritten onto the crawled origin.
type InterceptPolicy struct {
	baseOrigin  string
	crawlOrigin string
	remap       bool

	rewrites atomic.Int64
}

// NewInterceptPolicy builds the policy for a chain crawled at crawlURL.
// An empty baseURL disables remapping.
func NewInterceptPolicy(baseURL, crawlURL string) (*InterceptPolicy, error) {
	crawlOrigin, err := sitepdf.Origin(crawlURL)
	if err != nil {
		return nil, err
	}
	p := &InterceptPolicy{crawlOrigin: crawlOrigin}

	if strings.TrimSpace(baseURL) == "" {
		return p, nil
	}
	baseOrigin, err := sitepdf.Origin(baseURL)
	if err != nil {
		return nil, err
	}
	p.baseOrigin = baseOrigin
	p.remap = baseOrigin != crawlOrigin
	return p, nil
}

// Remapping reports whether the policy ever rewrites requests.
func (p *InterceptPolicy) Remapping() bool {
	return p.remap
}

// Rewrites returns how many requests have been rewritten so far.
func (p *InterceptPolicy) Rewrites() int {
	return int(p.rewrites.Load())
}

// Decide implements sitepdf.InterceptFunc.
func (p *InterceptPolicy) Decide(req sitepdf.Request) sitepdf.Decision {
	if sitepdf.IsPrintTarget(req.URL) {
		return sitepdf.Decision{Action: sitepdf.ActionAbort}
	}
	if !p.remap {
		return sitepdf.Decision{Action: sitepdf.ActionContinue}
	}
	if origin, err := sitepdf.Origin(req.URL); err != nil || origin != p.baseOrigin {
		return sitepdf.Decision{Action: sitepdf.ActionContinue}
	}

	mapped, err := sitepdf.MapURLToOrigin(req.URL, p.crawlOrigin)
	if err != nil {
		return sitepdf.Decision{Action: sitepdf.ActionContinue}
	}
	p.rewrites.Add(1)
	return sitepdf.Decision{Action: sitepdf.ActionRewrite, URL: mapped}
}
