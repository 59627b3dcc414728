// Package http serves the pothole viewer page, its JSON API, the image
// assets and the operational endpoints.
package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/couchcryptid/pothole-viewer/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the non-API parts of the server.
type Options struct {
	// ImageDir is served under ImagePrefix.
	ImageDir    string
	ImagePrefix string

	// Geocoder resolves the detail panel address. Nil disables lookups.
	Geocoder domain.Geocoder
}

// Server exposes the viewer over HTTP.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	viewer     *domain.Viewer
	geocoder   domain.Geocoder
	page       *template.Template
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the HTTP server. The service reports ready when every
// checker does.
func NewServer(addr string, viewer *domain.Viewer, opts Options, metrics *observability.Metrics, logger *slog.Logger, checkers ...ReadinessChecker) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:      mux,
		viewer:   viewer,
		geocoder: opts.Geocoder,
		page:     pageTemplate,
		metrics:  metrics,
		logger:   logger,
	}

	s.handle("GET /{$}", s.handlePage)

	s.handle("GET /api/state", s.handleState)
	s.handle("GET /api/potholes", s.handleCards)
	s.handle("GET /api/potholes/{id}", s.handlePothole)
	s.handle("PUT /api/potholes/{id}/severity", s.handleUpdateSeverity)
	s.handle("POST /api/potholes/{id}/notes", s.handleAddNote)
	s.handle("POST /api/potholes/{id}/repair", s.handleMarkRepaired)
	s.handle("PUT /api/selection", s.handleSelect)
	s.handle("DELETE /api/selection", s.handleClearSelection)
	s.handle("PUT /api/lightbox", s.handleOpenImage)
	s.handle("DELETE /api/lightbox", s.handleCloseImage)
	s.handle("POST /api/map-style/toggle", s.handleToggleMapStyle)
	s.handle("PUT /api/detail/note", s.handleSetNoteDraft)
	s.handle("POST /api/detail/note", s.handleSubmitNote)
	s.handle("POST /api/reset", s.handleReset)
	s.handle("GET /api/markers.geojson", s.handleMarkers)

	if opts.ImageDir != "" {
		prefix := opts.ImagePrefix
		if prefix == "" {
			prefix = "/images/"
		}
		s.handle("GET "+prefix, imageHandler(prefix, opts.ImageDir).ServeHTTP)
	}

	s.handle("GET /healthz", sharedobs.LivenessHandler())
	s.handle("GET /readyz", sharedobs.ReadinessHandler(readiness(checkers)))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handle registers h under pattern with request metrics labelled by pattern.
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(pattern, h))
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		if rec.status >= http.StatusInternalServerError {
			s.logger.Error("request failed", "route", route, "status", rec.status)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// imageHandler serves files from dir. Directory listings are not exposed.
func imageHandler(prefix, dir string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
