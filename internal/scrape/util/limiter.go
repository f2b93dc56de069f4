package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter rate-limits outbound requests per hostname so a run that fans
// out over many companies stays polite to each API (api.lever.co,
// boards-api.greenhouse.io, ...).
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(reqPerSec),
		burst:    burst,
	}
}

func (hl *HostLimiter) forHost(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.limiters[host]
	if !ok {
		lim = rate.NewLimiter(hl.limit, hl.burst)
		hl.limiters[host] = lim
	}
	return lim
}

// WaitURL blocks until the URL's host has budget, or ctx is done. Unparsable
// URLs share a single fallback bucket.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.forHost("_").Wait(ctx)
	}
	return hl.forHost(u.Host).Wait(ctx)
}
