package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker   = "localhost:9092"
	testMapboxToken = "pk.test-token"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/pothole_data.json", cfg.DataFile)
	assert.Equal(t, "data/images", cfg.ImageDir)
	assert.Equal(t, "/images/", cfg.ImageURLPrefix)
	assert.InDelta(t, 37.71677601, cfg.MapCenterLat, 1e-9)
	assert.InDelta(t, -122.47224851, cfg.MapCenterLng, 1e-9)
	assert.Equal(t, 13, cfg.MapDefaultZoom)
	assert.Equal(t, 18, cfg.MapFocusZoom)
	assert.Equal(t, 100*time.Millisecond, cfg.ScrollDelay)
	assert.Empty(t, cfg.StreetTileURL)
	assert.Empty(t, cfg.SatelliteTileURL)
	assert.False(t, cfg.ActivityKafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "pothole-activity", cfg.KafkaActivityTopic)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, 256, cfg.ActivityBuffer)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_FILE", "/srv/potholes.json")
	t.Setenv("IMAGE_DIR", "/srv/images")
	t.Setenv("IMAGE_URL_PREFIX", "static/img")
	t.Setenv("MAP_CENTER_LAT", "40.7128")
	t.Setenv("MAP_CENTER_LNG", "-74.006")
	t.Setenv("MAP_DEFAULT_ZOOM", "12")
	t.Setenv("MAP_FOCUS_ZOOM", "19")
	t.Setenv("SCROLL_DELAY", "250ms")
	t.Setenv("TILE_STREET_URL", "https://tiles.example.com/{z}/{x}/{y}.png")
	t.Setenv("ACTIVITY_KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ACTIVITY_TOPIC", "custom-activity")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("ACTIVITY_BUFFER", "64")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/potholes.json", cfg.DataFile)
	assert.Equal(t, "/srv/images", cfg.ImageDir)
	assert.Equal(t, "/static/img/", cfg.ImageURLPrefix)
	assert.InDelta(t, 40.7128, cfg.MapCenterLat, 1e-9)
	assert.InDelta(t, -74.006, cfg.MapCenterLng, 1e-9)
	assert.Equal(t, 12, cfg.MapDefaultZoom)
	assert.Equal(t, 19, cfg.MapFocusZoom)
	assert.Equal(t, 250*time.Millisecond, cfg.ScrollDelay)
	assert.Equal(t, "https://tiles.example.com/{z}/{x}/{y}.png", cfg.StreetTileURL)
	assert.True(t, cfg.ActivityKafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-activity", cfg.KafkaActivityTopic)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, 64, cfg.ActivityBuffer)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_InvalidScrollDelay(t *testing.T) {
	t.Setenv("SCROLL_DELAY", "-5ms")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCROLL_DELAY")
}

func TestLoad_InvalidMapCenter(t *testing.T) {
	t.Setenv("MAP_CENTER_LAT", "north")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_CENTER_LAT")
}

func TestLoad_ZoomOutOfRange(t *testing.T) {
	t.Setenv("MAP_FOCUS_ZOOM", "30")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_FOCUS_ZOOM")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_ActivityTopicRequiredWhenEnabled(t *testing.T) {
	t.Setenv("ACTIVITY_KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_ACTIVITY_TOPIC", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_ACTIVITY_TOPIC")
}

func TestLoad_InvalidBufferFallsBack(t *testing.T) {
	t.Setenv("ACTIVITY_BUFFER", "-3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.ActivityBuffer)
}
