package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ZaryabShah/matching-score/internal/api"
	"github.com/ZaryabShah/matching-score/internal/cache"
	"github.com/ZaryabShah/matching-score/internal/config"
	"github.com/ZaryabShah/matching-score/internal/matcher"
	"github.com/ZaryabShah/matching-score/internal/observability"
	"github.com/ZaryabShah/matching-score/internal/scraper"
	"github.com/ZaryabShah/matching-score/internal/storage"
	"github.com/ZaryabShah/matching-score/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	observability.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := scraper.NewClient(cfg.Scraper, logger)
	if err != nil {
		logger.Error("failed to create http client", "error", err)
		os.Exit(1)
	}

	var amazon scraper.PlatformScraper = scraper.NewAmazonScraper(client, logger)
	var target scraper.PlatformScraper = scraper.NewTargetScraper(client, cfg.Scraper, logger)

	if cfg.Redis.Enabled {
		recordCache, err := cache.NewRecordCache(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer recordCache.Close()
		amazon = cache.NewCachedScraper(amazon, recordCache)
		target = cache.NewCachedScraper(target, recordCache)
	}

	store, err := storage.NewReportStore(cfg.Storage.ReportsDir)
	if err != nil {
		logger.Error("failed to create report store", "error", err)
		os.Exit(1)
	}

	weights := matcher.DefaultWeights()
	weights.FeatureCap = cfg.Matching.FeatureCap
	ranker := matcher.NewRanker(matcher.NewScorer(matcher.WithWeights(weights)), cfg.Matching.Workers)

	svc := workflow.NewService(amazon, target, ranker, store, workflow.Config{
		MaxSearchItems: cfg.Scraper.MaxSearchItems,
		MaxResults:     cfg.Matching.MaxResults,
		FetchWorkers:   cfg.Scraper.ConcurrentLimit,
	}, logger)

	handlers := api.NewHandlers(svc, store, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", observability.Handler())
	r.Mount("/", handlers.Routes())

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting match server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
