package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/review-comments/internal/errors"
	"github.com/pribylovaa/review-comments/pkg/log"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = time.Minute
)

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiterPool — token bucket на каждого вызывающего; простаивающие бакеты вычищаются.
type limiterPool struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	entries   map[uuid.UUID]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	return &limiterPool{
		rps:     rate.Limit(rps),
		burst:   burst,
		entries: make(map[uuid.UUID]*limiterEntry),
		now:     time.Now,
	}
}

func (p *limiterPool) allow(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) >= limiterSweepEvery {
		for k, e := range p.entries {
			if now.Sub(e.seen) >= limiterIdleTTL {
				delete(p.entries, k)
			}
		}
		p.lastSweep = now
	}

	e, ok := p.entries[id]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(p.rps, p.burst)}
		p.entries[id] = e
	}
	e.seen = now

	return e.lim.AllowN(now, 1)
}

// RateLimit ограничивает мутирующие запросы (всё, кроме GET/HEAD/OPTIONS) на одного
// вызывающего. Должен стоять после Authenticate. rps <= 0 делает мидлвар no-op.
func RateLimit(rps float64, burst int) Middleware {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		pool := newLimiterPool(rps, burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			caller, ok := CallerFrom(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !pool.allow(caller.ID) {
				log.From(r.Context()).Warn("rate limited")
				w.Header().Set("Retry-After", "1")
				apierrors.WriteError(w, r, apierrors.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
