package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/review-comments/internal/auth"
	"github.com/pribylovaa/review-comments/internal/service"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("service/comments/Op: %w", err) }

	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"validation", wrap(service.ErrEmptyContent), http.StatusBadRequest, "validation_error"},
		{"bad cursor", wrap(service.ErrInvalidCursor), http.StatusBadRequest, "validation_error"},
		{"bad body", ErrBadRequest, http.StatusBadRequest, "validation_error"},
		{"no token", ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"bad token", fmt.Errorf("auth/Verify: %w", auth.ErrInvalidToken), http.StatusUnauthorized, "unauthenticated"},
		{"expired token", fmt.Errorf("auth/Verify: %w", auth.ErrTokenExpired), http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", wrap(service.ErrCannotResolve), http.StatusForbidden, "forbidden"},
		{"not found", wrap(service.ErrCommentNotFound), http.StatusNotFound, "not_found"},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline", fmt.Errorf("x: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"internal", wrap(service.ErrInternal), http.StatusInternalServerError, "internal"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Сообщение — текст конкретной ошибки, без op и категории.
func TestToHTTP_SpecificMessage(t *testing.T) {
	_, resp := ToHTTP(fmt.Errorf("service/comments/CreateComment: %w", service.ErrTypeNotAllowed))
	require.Equal(t, "tipo is not allowed for this role", resp.Error.Message)

	_, resp = ToHTTP(fmt.Errorf("service/list/ListComments: %w", service.ErrRevisionNotFound))
	require.Equal(t, "revision not found", resp.Error.Message)

	// внутренние детали не утекают
	_, resp = ToHTTP(fmt.Errorf("pgx: connection refused at 10.0.0.1"))
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_Envelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/comments/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()

	WriteError(rr, req, service.ErrCommentNotVisible)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "forbidden", body.Error.Code)
	require.Equal(t, "comment is not visible to this role", body.Error.Message)
	require.Equal(t, "rid-1", body.Error.RequestID)
}
