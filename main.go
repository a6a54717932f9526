package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"redfin-finder/config"
	"redfin-finder/geo"
	"redfin-finder/metrics"
	"redfin-finder/scraper/redfin"
	"redfin-finder/services"
	"redfin-finder/storage"
	"redfin-finder/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger().Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	logger, err := utils.NewFileLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		logger = utils.NewLogger()
		logger.Warn("Could not open log file %s, logging to console only: %v", cfg.LogFile, err)
	}

	code := run(cfg, logger)
	_ = logger.Close()
	os.Exit(code)
}

func run(cfg *config.Config, logger *utils.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Redfin Finder run starting ===")
	logger.Info("Config | towns: %d | max price: $%d | max HOA: $%d | geocode delay: %v | detail pages: %v",
		len(config.Towns), cfg.Profile.Filters.MaxPrice, cfg.Profile.Filters.MaxHOAMonthly,
		cfg.GeocodeDelay, cfg.DetailPages)

	rec := metrics.New()

	var backing geo.CacheBacking
	if cfg.GeocachePath != "" {
		sqliteCache, err := geo.OpenSQLiteCache(cfg.GeocachePath)
		if err != nil {
			logger.Warn("Geocache unavailable, continuing in memory only: %v", err)
		} else {
			defer sqliteCache.Close()
			backing = sqliteCache
		}
	}

	nominatim := geo.NewNominatim(cfg.NominatimURL, cfg.UserAgent, cfg.RequestTimeout, utils.NewThrottle(cfg.GeocodeDelay))
	osrm := geo.NewOSRM(cfg.OSRMURL, cfg.UserAgent, cfg.RequestTimeout, utils.NewThrottle(cfg.RouteDelay))
	geocache := geo.NewGeoCache(ctx, nominatim, backing, logger, rec)
	transit := geo.NewTransitIndex(geo.MBTAStations)
	logger.Info("Transit index: %d stations | geocache: %d addresses", transit.Len(), geocache.Len())

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath, cfg.CSVSnapshots,
		config.Destination1.Label, config.Destination2.Label)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		return 1
	}
	defer csvWriter.Close()
	exporters := []storage.ListingWriter{csvWriter}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN(), logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL, skipping the database mirror: %v", err)
		} else {
			defer pgWriter.Close()
			exporters = append(exporters, pgWriter)
		}
	}

	source, err := redfin.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to create Redfin source: %v", err)
		return 1
	}
	if cfg.DetailPages {
		details := redfin.NewBrowserDetails(cfg, logger)
		defer details.Close()
		source.WithDetails(details)
	}

	insights := services.NewInsightService(logger)
	pipeline := &services.Pipeline{
		Source:      source,
		Store:       storage.NewListingStore(cfg.StorePath, logger),
		Cleaner:     services.NewCleaner(logger),
		Filter:      services.NewFilter(cfg.Profile.Filters, config.Towns, config.BlockedNeighborhoods, config.BlockedZips),
		Enricher:    services.NewEnricher(geocache, transit, osrm, config.Destination1, config.Destination2, logger, rec),
		Rental:      services.NewRentalEstimator(config.FallbackRents(), logger),
		Rater:       services.NewRater(cfg.Profile),
		Assumptions: cfg.Profile.Assumptions,
		Exporters:   exporters,
		Insights:    insights,
		Logger:      logger,
		Metrics:     rec,
	}

	summary, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("Run failed: %v", err)
		writeMetrics(cfg, rec, logger)
		return 1
	}

	insights.Print(os.Stdout, summary)
	writeMetrics(cfg, rec, logger)

	out := cfg.CSVOutputPath
	if snap := csvWriter.LastSnapshot(); snap != "" {
		out += " | snapshot → " + snap
	}
	fmt.Printf("  Done. Listings → %s | store → %s\n\n", out, cfg.StorePath)
	return 0
}

func writeMetrics(cfg *config.Config, rec *metrics.Recorder, logger *utils.Logger) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := rec.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Warn("Could not write metrics to %s: %v", cfg.MetricsTextfile, err)
	}
}
