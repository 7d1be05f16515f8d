package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/review-comments/internal/errors"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/pkg/log"
)

// TokenVerifier — проверка bearer-токена (auth.Verifier).
type TokenVerifier interface {
	Verify(token string) (models.Caller, error)
}

type callerKey struct{}

// Authenticate требует заголовок "Authorization: Bearer <jwt>" и кладёт
// проверенного вызывающего в контекст. Без валидного токена — 401.
func Authenticate(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				log.From(r.Context()).Warn("missing bearer token")
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			caller, err := v.Verify(token)
			if err != nil {
				log.From(r.Context()).Warn("token rejected", "err", err)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, caller)
			ctx = log.With(ctx, "caller_id", caller.ID.String(), "role", string(caller.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom возвращает вызывающего, положенного Authenticate.
func CallerFrom(ctx context.Context) (models.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(models.Caller)
	return c, ok
}

// WithCaller кладёт вызывающего в контекст (для тестов хендлеров).
func WithCaller(ctx context.Context, c models.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
