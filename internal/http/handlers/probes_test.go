package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestProbes_Healthz(t *testing.T) {
	var dbErr error
	p := &Probes{Pingers: map[string]Pinger{
		"postgres": pingerFunc(func(context.Context) error { return dbErr }),
	}}

	check := func() int {
		rr := httptest.NewRecorder()
		p.Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		return rr.Code
	}

	require.Equal(t, http.StatusServiceUnavailable, check())

	p.Ready.Store(true)
	require.Equal(t, http.StatusOK, check())

	dbErr = errors.New("connection refused")
	require.Equal(t, http.StatusServiceUnavailable, check())
}

func TestProbes_Livez(t *testing.T) {
	p := &Probes{}
	rr := httptest.NewRecorder()
	p.Livez(rr, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
