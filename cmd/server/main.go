package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/countries-api/internal/api"
	"github.com/neexbeast/countries-api/internal/config"
	"github.com/neexbeast/countries-api/internal/metrics"
	"github.com/neexbeast/countries-api/internal/ratelimit"
	"github.com/neexbeast/countries-api/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)

	routerCfg := api.RouterConfig{
		Token:   cfg.APIToken,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	// Connect to Redis when configured; otherwise rate limits are per process.
	var counter httprate.LimitCounter
	if cfg.RedisURL != "" {
		redisClient, err := ratelimit.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		counter = ratelimit.NewRedisCounter(redisClient)
		routerCfg.Redis = &redisPingerAdapter{client: redisClient}
		log.Info("redis rate limiter enabled")
	}
	routerCfg.RateLimit = ratelimit.Middleware(cfg.RateLimitPerMinute, time.Minute, counter, log)

	if cfg.APIToken == "" {
		log.Warn("API_TOKEN not set; countries endpoint is unauthenticated")
	}

	// Wire dependencies.
	fetcher := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout)
	handlers := api.NewHandlers(fetcher, log)
	router := api.NewRouter(handlers, routerCfg, log)

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}

	log.Info("server starting", "port", cfg.Port, "upstream", cfg.UpstreamURL)
	return serve(ctx, srv, ln, cfg.ShutdownTimeout, log)
}

// serve runs srv on ln until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, log *slog.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("server shut down cleanly")
		return nil
	})

	return g.Wait()
}

// redisPingerAdapter adapts redis.Client to the api.Pinger interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
