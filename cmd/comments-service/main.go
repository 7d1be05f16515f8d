package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/review-comments/internal/auth"
	"github.com/pribylovaa/review-comments/internal/cache"
	"github.com/pribylovaa/review-comments/internal/config"
	rchttp "github.com/pribylovaa/review-comments/internal/http"
	"github.com/pribylovaa/review-comments/internal/http/handlers"
	"github.com/pribylovaa/review-comments/internal/metrics"
	"github.com/pribylovaa/review-comments/internal/notify"
	"github.com/pribylovaa/review-comments/internal/service"
	"github.com/pribylovaa/review-comments/internal/storage"
	rcmongo "github.com/pribylovaa/review-comments/internal/storage/mongo"
	"github.com/pribylovaa/review-comments/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// notifyBuffer — ёмкость in-process очереди уведомлений (бэкенд MongoDB).
const notifyBuffer = 1024

// queue — фоновая доставка уведомлений с управляемой остановкой.
type queue interface {
	notify.Dispatcher
	Stop(ctx context.Context) error
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting comments-service", "env", cfg.Env, "db_driver", cfg.DB.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	log.Info("service_stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	probes := &handlers.Probes{Pingers: map[string]handlers.Pinger{}}

	store, pg, err := openStorage(ctx, cfg, probes)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info("storage_connected", slog.String("driver", cfg.DB.Driver))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svc := service.New(store, cfg.Limits)
	svc.SetMetrics(m)

	if cfg.Redis.URL != "" {
		statsCache, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Prefix, cfg.Redis.StatsTTL)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := statsCache.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()

		svc.SetStatsCache(statsCache)
		probes.Pingers["redis"] = statsCache
		log.Info("stats_cache_enabled", slog.Duration("ttl", cfg.Redis.StatsTTL))
	}

	if cfg.Notify.WebhookURL != "" {
		q, err := startQueue(ctx, cfg, pg, log)
		if err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if serr := q.Stop(stopCtx); serr != nil {
				log.Warn("notify_stop_incomplete", slog.String("err", serr.Error()))
			}
		}()

		svc.SetDispatcher(q)
		log.Info("notifications_enabled")
	}

	handler := rchttp.NewRouter(svc, rchttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		Verifier:       auth.NewVerifier(cfg.Auth),
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Probes:         probes,
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return err
	}
	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	probes.Ready.Store(true)
	log.Info("service_ready")

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
	}

	probes.Ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	return serveErr
}

// openStorage подключает выбранный бэкенд. Для PostgreSQL дополнительно отдаёт
// пул соединений: на нём работает очередь уведомлений.
func openStorage(ctx context.Context, cfg *config.Config, probes *handlers.Probes) (storage.Storage, *postgres.Storage, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.DB.Driver {
	case config.DriverMongo:
		m, err := rcmongo.New(dbCtx, cfg.DB.URL)
		if err != nil {
			return nil, nil, err
		}
		probes.Pingers["mongo"] = m
		return m, nil, nil
	default:
		pg, err := postgres.New(dbCtx, cfg.DB.URL)
		if err != nil {
			return nil, nil, err
		}
		probes.Pingers["postgres"] = pg
		return pg, pg, nil
	}
}

// startQueue выбирает доставку уведомлений: river поверх PostgreSQL (переживает рестарт)
// или in-process пул воркеров для MongoDB.
func startQueue(ctx context.Context, cfg *config.Config, pg *postgres.Storage, log *slog.Logger) (queue, error) {
	sender := notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.Timeout)

	if pg == nil {
		a := notify.NewAsync(sender, log, cfg.Notify.Timeout, notifyBuffer)
		a.Start(cfg.Notify.MaxWorkers)
		return a, nil
	}

	rq, err := notify.NewRiverQueue(pg.Pool(), sender, log, cfg.Notify.MaxWorkers, cfg.Notify.Timeout)
	if err != nil {
		return nil, err
	}
	// Отмена ctx жёстко останавливает river; мягкая остановка идёт через Stop при выходе из run.
	if err := rq.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}

	return rq, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
