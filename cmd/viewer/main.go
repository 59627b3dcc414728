package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/couchcryptid/pothole-viewer/internal/activity"
	"github.com/couchcryptid/pothole-viewer/internal/adapter/dataset"
	httpadapter "github.com/couchcryptid/pothole-viewer/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/pothole-viewer/internal/adapter/kafka"
	"github.com/couchcryptid/pothole-viewer/internal/adapter/mapbox"
	"github.com/couchcryptid/pothole-viewer/internal/config"
	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/couchcryptid/pothole-viewer/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A local .env is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	potholes, err := dataset.Load(cfg.DataFile, cfg.ImageURLPrefix)
	if err != nil {
		logger.Error("failed to load pothole data", "file", cfg.DataFile, "error", err)
		os.Exit(1)
	}
	metrics.PotholesLoaded.Set(float64(len(potholes)))
	logger.Info("pothole data loaded", "file", cfg.DataFile, "count", len(potholes))

	// Reverse geocoding for the detail panel (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Activity events go to Kafka only when enabled; otherwise they are log lines.
	var (
		sink      domain.ActivitySink
		publisher *activity.Publisher
		writer    *kafkaadapter.Writer
		checkers  []httpadapter.ReadinessChecker
	)
	if cfg.ActivityKafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = activity.NewPublisher(writer, logger, metrics, cfg.BatchSize, cfg.BatchFlushInterval, cfg.ActivityBuffer)
		sink = publisher
		checkers = append(checkers, publisher)
		logger.Info("activity publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaActivityTopic)
	}

	viewer := domain.NewViewer(potholes, domain.ViewerOptions{
		Center:      domain.Location{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLng},
		DefaultZoom: cfg.MapDefaultZoom,
		FocusZoom:   cfg.MapFocusZoom,
		ScrollDelay: cfg.ScrollDelay,
		Tiles:       domain.NewTileSources(cfg.StreetTileURL, cfg.SatelliteTileURL),
	}, sink, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, viewer, httpadapter.Options{
		ImageDir:    cfg.ImageDir,
		ImagePrefix: cfg.ImageURLPrefix,
		Geocoder:    geocoder,
	}, metrics, logger, checkers...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start activity publisher.
	var wg sync.WaitGroup
	if publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := publisher.Run(ctx); err != nil {
				logger.Error("activity publisher error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	// The publisher flushes what it still holds before Run returns.
	wg.Wait()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
