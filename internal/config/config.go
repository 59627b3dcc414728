package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DataFile       string
	ImageDir       string
	ImageURLPrefix string

	// Map defaults.
	MapCenterLat     float64
	MapCenterLng     float64
	MapDefaultZoom   int
	MapFocusZoom     int
	ScrollDelay      time.Duration
	StreetTileURL    string
	SatelliteTileURL string

	// Activity publishing to Kafka.
	ActivityKafkaEnabled bool
	KafkaBrokers         []string
	KafkaActivityTopic   string
	BatchSize            int
	BatchFlushInterval   time.Duration
	ActivityBuffer       int

	// Mapbox reverse geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	scrollDelay, err := parsePositiveDuration("SCROLL_DELAY", "100ms")
	if err != nil {
		return nil, err
	}

	centerLat, err := parseFloat("MAP_CENTER_LAT", 37.71677601)
	if err != nil {
		return nil, err
	}
	centerLng, err := parseFloat("MAP_CENTER_LNG", -122.47224851)
	if err != nil {
		return nil, err
	}

	defaultZoom, err := parseZoom("MAP_DEFAULT_ZOOM", 13)
	if err != nil {
		return nil, err
	}
	focusZoom, err := parseZoom("MAP_FOCUS_ZOOM", 18)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataFile:       sharedcfg.EnvOrDefault("DATA_FILE", "data/pothole_data.json"),
		ImageDir:       sharedcfg.EnvOrDefault("IMAGE_DIR", "data/images"),
		ImageURLPrefix: normalizePrefix(sharedcfg.EnvOrDefault("IMAGE_URL_PREFIX", "/images/")),

		MapCenterLat:     centerLat,
		MapCenterLng:     centerLng,
		MapDefaultZoom:   defaultZoom,
		MapFocusZoom:     focusZoom,
		ScrollDelay:      scrollDelay,
		StreetTileURL:    os.Getenv("TILE_STREET_URL"),
		SatelliteTileURL: os.Getenv("TILE_SATELLITE_URL"),

		ActivityKafkaEnabled: os.Getenv("ACTIVITY_KAFKA_ENABLED") == "true",
		KafkaBrokers:         sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaActivityTopic:   sharedcfg.EnvOrDefault("KAFKA_ACTIVITY_TOPIC", "pothole-activity"),
		BatchSize:            batchSize,
		BatchFlushInterval:   flushInterval,
		ActivityBuffer:       parsePositiveInt("ACTIVITY_BUFFER", 256),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parsePositiveInt("MAPBOX_CACHE_SIZE", 1000),
	}

	if cfg.DataFile == "" {
		return nil, errors.New("DATA_FILE is required")
	}
	if cfg.ActivityKafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when ACTIVITY_KAFKA_ENABLED is true")
	}
	if cfg.ActivityKafkaEnabled && cfg.KafkaActivityTopic == "" {
		return nil, errors.New("KAFKA_ACTIVITY_TOPIC is required when ACTIVITY_KAFKA_ENABLED is true")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

// parseZoom accepts the Leaflet zoom range 0–22.
func parseZoom(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 22 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func normalizePrefix(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
