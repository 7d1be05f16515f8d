package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/review-comments/internal/http/handlers"
	"github.com/pribylovaa/review-comments/internal/http/middleware"
	"github.com/pribylovaa/review-comments/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.

	Verifier       middleware.TokenVerifier
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler // /metrics; nil — не регистрируется
	Probes         *handlers.Probes
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.CommentService, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
		middleware.CORS(opts.CORSOrigins),
	)

	// Пробы и метрики без аутентификации.
	if opts.Probes != nil {
		root.Get("/livez", opts.Probes.Livez)
		root.Get("/healthz", opts.Probes.Healthz)
	}
	if opts.MetricsHandler != nil {
		root.Handle("/metrics", opts.MetricsHandler)
	}

	h := handlers.New(svc)

	api := func(r chi.Router) {
		r.Use(
			middleware.Timeout(opts.Timeout), // общий дедлайн запроса
			middleware.Authenticate(opts.Verifier),
			middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst),
		)
		registerRoutes(r, h)
	}

	if opts.BasePath != "" {
		root.Route(opts.BasePath, api)
		return root
	}

	root.Group(api)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// revisions
	r.Get("/revisions/{revision_id}/comments", h.ListComments)
	r.Post("/revisions/{revision_id}/comments", h.CreateComment)
	r.Get("/revisions/{revision_id}/comments/statistics", h.Statistics)

	// comments
	r.Get("/comments/{id}", h.GetComment)
	r.Patch("/comments/{id}", h.UpdateComment)
	r.Post("/comments/{id}/toggle", h.ToggleState)
	r.Delete("/comments/{id}", h.DeleteComment)
}
