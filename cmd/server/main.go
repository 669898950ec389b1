// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/watchly/internal/api"
	"github.com/tomtom215/watchly/internal/cache"
	"github.com/tomtom215/watchly/internal/config"
	"github.com/tomtom215/watchly/internal/logging"
	"github.com/tomtom215/watchly/internal/metrics"
	"github.com/tomtom215/watchly/internal/recommend"
	"github.com/tomtom215/watchly/internal/supervisor"
	"github.com/tomtom215/watchly/internal/supervisor/services"
	"github.com/tomtom215/watchly/internal/tmdb"
)

// genreCacheSweepInterval is how often expired genre entries are purged.
const genreCacheSweepInterval = 10 * time.Minute

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("addon_id", cfg.Addon.ID).
		Str("version", cfg.Addon.Version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Watchly with supervisor tree")

	// === METADATA PROVIDER ===
	tmdbClient := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL:           cfg.TMDB.BaseURL,
		APIKey:            cfg.TMDB.APIKey,
		Language:          cfg.TMDB.Language,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		Burst:             cfg.TMDB.Burst,
	}, logging.WithComponent("tmdb"))

	breaker := tmdb.NewCircuitBreakerClient(tmdbClient, tmdb.BreakerConfig{
		MaxRequests:  cfg.TMDB.Breaker.MaxRequests,
		Interval:     cfg.TMDB.Breaker.Interval,
		Timeout:      cfg.TMDB.Breaker.Timeout,
		MinRequests:  cfg.TMDB.Breaker.MinRequests,
		FailureRatio: cfg.TMDB.Breaker.FailureRatio,
	}, logging.WithComponent("tmdb-breaker"))

	genreCache := cache.New[[]string](cfg.TMDB.CacheSize, cfg.TMDB.CacheTTL)
	resolver := tmdb.NewGenreResolver(breaker, genreCache, cfg.TMDB.NegativeCacheTTL, logging.WithComponent("genres"))

	logging.Info().
		Str("base_url", cfg.TMDB.BaseURL).
		Float64("requests_per_second", cfg.TMDB.RequestsPerSecond).
		Int("cache_size", cfg.TMDB.CacheSize).
		Dur("cache_ttl", cfg.TMDB.CacheTTL).
		Msg("TMDB genre resolver initialized")

	// === CATALOG SERVICE ===
	catalog := recommend.NewCatalogService(cfg.RecommendConfig(), resolver, logging.WithComponent("catalog"))

	// === SECURITY NOTICES ===
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*) in production")
	}

	// === SUPERVISOR TREE ===
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(cache.NewJanitor("genre-cache-janitor", genreCache, genreCacheSweepInterval,
		func(removed, remaining int) {
			metrics.MetadataCacheEntries.Set(float64(remaining))
			if removed > 0 {
				logging.Debug().Int("removed", removed).Int("remaining", remaining).Msg("Genre cache swept")
			}
		}))

	handler := api.NewHandler(catalog, cfg, breaker)
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report is best effort
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Watchly stopped gracefully")
}
