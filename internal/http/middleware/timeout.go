package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pribylovaa/review-comments/pkg/log"
)

// Timeout ограничивает обработку запроса бюджетом d.
// Унаследованный дедлайн короче d сохраняется, длиннее — урезается до d:
// операции выдачи читают всю ревизию, и клиентский дедлайн не должен растягивать их сверх бюджета.
// Исчерпанный бюджет логируется; ответ (504) формирует обработчик через errors.WriteError.
// d <= 0 отключает мидлвар.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, inherited := r.Context().Deadline()

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				log.From(ctx).Warn("request deadline exceeded",
					"budget", d.String(),
					"inherited_deadline", inherited,
				)
			}
		})
	}
}
