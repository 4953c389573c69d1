// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /api/warehouse/create    configuration document -> layout JSON
//	POST /api/warehouse/validate  configuration document -> validation report
//	GET  /api/stats               in-process counters
//	GET  /healthz                 liveness
//	GET  /version                 build information
//
// The request body format follows the Content-Type header (JSON, TOML or
// YAML; JSON when absent). The create and validate routes accept a "mode"
// query parameter (strict or permissive) and a "refresh" flag.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/racklayout/pkg/buildinfo"
	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
	"github.com/matzehuels/racklayout/pkg/observability"
	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// Server routes HTTP requests to a pipeline.Runner.
type Server struct {
	runner   *pipeline.Runner
	settings *Settings
	logger   *log.Logger
	counters *observability.Counters
	router   chi.Router
}

// New creates the HTTP handler. It registers a fresh set of
// observability.Counters as the process-wide hooks and serves them from
// /api/stats.
func New(runner *pipeline.Runner, settings *Settings, logger *log.Logger) http.Handler {
	if settings == nil {
		settings = DefaultSettings()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		settings: settings,
		logger:   logger,
		counters: observability.NewCounters(),
	}
	observability.SetPipelineHooks(s.counters)
	observability.SetCacheHooks(s.counters)
	observability.SetHTTPHooks(s.counters)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/version", s.version)
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.stats)
		r.Route("/warehouse", func(r chi.Router) {
			r.Post("/create", s.createLayout)
			r.Post("/validate", s.validateLayout)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves h on settings.Addr until ctx is cancelled, then shuts
// down gracefully within settings.ShutdownTimeout.
func ListenAndServe(ctx context.Context, h http.Handler, settings *Settings, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         settings.Addr,
		Handler:      h,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", settings.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", settings.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.counters.Snapshot())
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	cfg, opts, err := s.decodeRequest(w, r)
	if err != nil {
		respondErr(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), cfg, opts)
	if err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("X-Config-Hash", result.ConfigHash)
	if result.CacheInfo.LayoutHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	respondJSON(w, http.StatusOK, result.Layout)
}

func (s *Server) validateLayout(w http.ResponseWriter, r *http.Request) {
	cfg, opts, err := s.decodeRequest(w, r)
	if err != nil {
		if errs.Is(err, errs.ErrCodeInvalidFormat) && statusOf(err) == http.StatusBadRequest {
			// An undecodable document is a validation result, not a request failure.
			respondJSON(w, http.StatusOK, pipeline.ValidationReport{
				Errors: []pipeline.Issue{{Code: errs.ErrCodeInvalidFormat, Message: err.Error()}},
			})
			return
		}
		respondErr(w, err)
		return
	}
	report, err := s.runner.Validate(r.Context(), cfg, opts)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// decodeRequest reads the configuration document and the pipeline options
// of a create or validate request.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*config.WarehouseConfig, pipeline.Options, error) {
	opts := pipeline.Options{
		Mode:   s.settings.Mode,
		Logger: s.logger.With("request_id", middleware.GetReqID(r.Context())),
	}
	q := r.URL.Query()
	if m := q.Get("mode"); m != "" {
		opts.Mode = m
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, errs.New(errs.ErrCodeInvalidInput, "invalid refresh value %q", v)
		}
		opts.Refresh = refresh
	}
	if !pipeline.ValidModes[opts.Mode] {
		return nil, opts, errs.New(errs.ErrCodeInvalidInput, "invalid mode %q (must be one of: strict, permissive)", opts.Mode)
	}

	format, err := formatOf(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, opts, err
	}
	body := http.MaxBytesReader(w, r.Body, s.settings.MaxBodyBytes)
	cfg, err := config.Decode(body, format)
	if err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

// formatOf maps a Content-Type header to a document format.
func formatOf(contentType string) (config.Format, error) {
	if contentType == "" {
		return config.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid content type")
	}
	switch mt {
	case "application/json", "text/json":
		return config.FormatJSON, nil
	case "application/toml", "text/toml":
		return config.FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return config.FormatYAML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

// =============================================================================
// Middleware
// =============================================================================

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondErr sends err with the status its code maps to.
func respondErr(w http.ResponseWriter, err error) {
	respondJSON(w, statusOf(err), errorResponse{Error: err.Error(), Code: errs.GetCode(err)})
}

// statusOf maps an error to an HTTP status.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidUnit, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeGeometryOverflow:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
