package handlers

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pribylovaa/review-comments/pkg/log"
)

// Pinger — зависимость, доступность которой проверяет /healthz (БД, Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probes — /livez и /healthz.
// Ready выставляет main после старта и снимает при остановке.
type Probes struct {
	Ready   atomic.Bool
	Pingers map[string]Pinger
	Timeout time.Duration
}

func (p *Probes) Livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (p *Probes) Healthz(w http.ResponseWriter, r *http.Request) {
	if !p.Ready.Load() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	for name, pg := range p.Pingers {
		if err := pg.Ping(ctx); err != nil {
			log.From(r.Context()).Warn("readiness check failed", "dependency", name, "err", err)
			http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
