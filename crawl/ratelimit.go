package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/sitepdf"
	"golang.org/x/time/rate"
)

var _ sitepdf.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces navigations per host using token buckets. Chains
// walking different hosts never wait on each other; chains on the same
// host share one bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps navigations per
// second to each host, with bursts of up to burst navigations. A
// non-positive rps disables limiting; burst below 1 is treated as 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Wait blocks until the host's bucket allows another navigation.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.limit, d.burst)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
