package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaryabShah/matching-score/internal/cache"
	"github.com/ZaryabShah/matching-score/internal/config"
	"github.com/ZaryabShah/matching-score/internal/matcher"
	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/scraper"
	"github.com/ZaryabShah/matching-score/internal/storage"
	"github.com/ZaryabShah/matching-score/internal/workflow"
)

func main() {
	var (
		searchTerm  = flag.String("search", "", "Search term to match across both marketplaces")
		sourcesFile = flag.String("sources", "", "JSON file with Amazon records (offline mode)")
		targetsFile = flag.String("targets", "", "JSON file with Target records (offline mode)")
		topN        = flag.Int("top", 10, "Number of ranked pairs to print")
		outputFile  = flag.String("output", "", "Write the full report JSON to this file (optional)")
	)
	flag.Parse()

	offline := *sourcesFile != "" || *targetsFile != ""
	if *searchTerm == "" && !offline {
		fmt.Println("Provide -search, or -sources and -targets for offline matching")
		flag.Usage()
		os.Exit(1)
	}
	if offline && (*sourcesFile == "" || *targetsFile == "") {
		fmt.Println("Offline mode needs both -sources and -targets")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build matching service", "error", err)
		os.Exit(1)
	}

	var report *models.Report
	if offline {
		report, err = runOffline(ctx, svc, *sourcesFile, *targetsFile)
	} else {
		report, err = svc.Run(ctx, *searchTerm)
	}
	if err != nil {
		logger.Error("matching run failed", "error", err)
		os.Exit(1)
	}

	printReport(report, *topN)

	if *outputFile != "" {
		if err := writeReport(report, *outputFile); err != nil {
			logger.Error("failed to write report", "path", *outputFile, "error", err)
			os.Exit(1)
		}
		fmt.Printf("\nFull report written to %s\n", *outputFile)
	}
}

func buildService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*workflow.Service, error) {
	client, err := scraper.NewClient(cfg.Scraper, logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var amazon scraper.PlatformScraper = scraper.NewAmazonScraper(client, logger)
	var target scraper.PlatformScraper = scraper.NewTargetScraper(client, cfg.Scraper, logger)

	if cfg.Redis.Enabled {
		recordCache, err := cache.NewRecordCache(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		amazon = cache.NewCachedScraper(amazon, recordCache)
		target = cache.NewCachedScraper(target, recordCache)
	}

	store, err := storage.NewReportStore(cfg.Storage.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("create report store: %w", err)
	}

	weights := matcher.DefaultWeights()
	weights.FeatureCap = cfg.Matching.FeatureCap
	ranker := matcher.NewRanker(matcher.NewScorer(matcher.WithWeights(weights)), cfg.Matching.Workers)

	return workflow.NewService(amazon, target, ranker, store, workflow.Config{
		MaxSearchItems: cfg.Scraper.MaxSearchItems,
		MaxResults:     cfg.Matching.MaxResults,
		FetchWorkers:   cfg.Scraper.ConcurrentLimit,
	}, logger), nil
}

func runOffline(ctx context.Context, svc *workflow.Service, sourcesPath, targetsPath string) (*models.Report, error) {
	sources, err := storage.LoadRecords(sourcesPath)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	targets, err := storage.LoadRecords(targetsPath)
	if err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}
	return svc.MatchRecords(ctx, "offline", sources, targets)
}

func printReport(report *models.Report, topN int) {
	fmt.Printf("Report %s\n", report.ID)
	fmt.Printf("Compared %d pairs (%d x %d), best score %.1f (%s)\n\n",
		report.Summary.TotalComparisons,
		report.Summary.UniqueSourceProducts,
		report.Summary.UniqueTargetProducts,
		report.Summary.BestScore,
		report.Summary.BestConfidence)

	if topN < 0 {
		topN = 0
	}
	if topN > len(report.Comparisons) {
		topN = len(report.Comparisons)
	}
	for _, c := range report.Comparisons[:topN] {
		fmt.Printf("#%d  %.1f  %-9s  %s <-> %s\n",
			c.Rank, c.Score, c.Confidence, c.Source.Title, c.Target.Title)
	}
}

func writeReport(report *models.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
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
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
