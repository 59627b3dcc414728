package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the viewer service.
type Metrics struct {
	PotholesLoaded prometheus.Gauge

	// Viewer operations. labels: action={select,clear_selection,open_image,close_image,toggle_map_style,update_severity,add_note,mark_repaired,reset}
	ViewerActions *prometheus.CounterVec

	// HTTP surface.
	HTTPRequests        *prometheus.CounterVec   // labels: route, code
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Activity publishing.
	ActivityRecorded       prometheus.Counter
	ActivityDropped        prometheus.Counter
	ActivityPublished      prometheus.Counter
	ActivityPublishErrors  prometheus.Counter
	ActivityBatchSize      prometheus.Histogram
	ActivityFlushDuration  prometheus.Histogram
	ActivityPublisherAlive prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PotholesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pothole_viewer",
			Name:      "potholes_loaded",
			Help:      "Number of pothole records loaded from the data file.",
		}),
		ViewerActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "actions_total",
			Help:      "Viewer operations applied, by action.",
		}, []string{"action"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pothole_viewer",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route pattern.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		ActivityRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_recorded_total",
			Help:      "Activity events accepted into the publish buffer.",
		}),
		ActivityDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_dropped_total",
			Help:      "Activity events dropped because the publish buffer was full.",
		}),
		ActivityPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_published_total",
			Help:      "Activity events written to the sink.",
		}),
		ActivityPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_publish_errors_total",
			Help:      "Failed activity batch writes.",
		}),
		ActivityBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_batch_size",
			Help:      "Number of activity events per published batch.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		ActivityFlushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_flush_duration_seconds",
			Help:      "Duration of a successful activity batch write.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ActivityPublisherAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pothole_viewer",
			Name:      "activity_publisher_running",
			Help:      "1 when the activity publisher is running, 0 otherwise.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pothole_viewer",
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pothole_viewer",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pothole_viewer",
			Name:      "geocode_enabled",
			Help:      "1 when address lookup is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.PotholesLoaded,
		m.ViewerActions,
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.ActivityRecorded,
		m.ActivityDropped,
		m.ActivityPublished,
		m.ActivityPublishErrors,
		m.ActivityBatchSize,
		m.ActivityFlushDuration,
		m.ActivityPublisherAlive,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	}
}
