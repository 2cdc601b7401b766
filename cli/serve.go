package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"interest-calc/config"
	httpLayer "interest-calc/http"
	"interest-calc/repository"
	"interest-calc/service"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Starts an HTTP server exposing

  POST /api/interest/compound
  POST /api/interest/simple

Compound results are cached in Redis when --redis-addr is set, in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), a.cfg, a.logger)
		},
	}

	cmd.Flags().String("addr", "", "HTTP listen address (default :8080)")
	cmd.Flags().String("redis-addr", "", "Redis address for the result cache")
	cmd.Flags().Duration("cache-ttl", 0, "Lifetime of cached compound results")
	cmd.Flags().Int("rate-limit", 0, "Requests per client per rate window")
	cmd.Flags().Duration("rate-window", 0, "Rate limit window")

	return cmd
}

func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.CacheRepository, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory result cache")
		return repository.NewMemoryCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		_ = cache.Close()
		return nil, nil, err
	}
	logger.Info("using redis result cache", "addr", cfg.RedisAddr)
	return cache, func() { _ = cache.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	interestService := service.NewInterestService(cache, cfg.CacheTTL, logger)
	handler := httpLayer.NewInterestHandler(interestService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpLayer.NewRouter(handler, rateLimiter, cfg.AllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
