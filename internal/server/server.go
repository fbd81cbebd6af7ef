// Package server exposes the high-score record over HTTP.
//
//	GET  /highscore  -> {"name": "...", "score": N}
//	POST /highscore  <- {"name": "...", "score": N}
//	GET  /health
//	GET  /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-snake/internal/highscore"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 4 << 10

// Config holds HTTP server settings.
type Config struct {
	Addr           string
	AllowedOrigins []string // CORS origins; empty allows any
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	SubmitRate     rate.Limit // POST /highscore requests per second; 0 disables the limit
	SubmitBurst    int
}

// DefaultConfig returns settings for a local server.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		SubmitRate:   10,
		SubmitBurst:  20,
	}
}

// Server serves the high-score API.
type Server struct {
	cfg      Config
	keeper   highscore.Keeper
	logger   *log.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	limiter  *rate.Limiter // Nil when submissions are unlimited
	started  time.Time

	httpServer *http.Server
}

// New creates a server. The keeper is instrumented on the server's own registry.
func New(cfg Config, keeper highscore.Keeper, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		cfg:      cfg,
		keeper:   highscore.Instrument(keeper, reg),
		logger:   logger,
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snake",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "snake",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route.",
			},
			[]string{"method", "route"},
		),
		started: time.Now(),
	}
	reg.MustRegister(s.requests, s.duration)

	if cfg.SubmitRate > 0 {
		s.limiter = rate.NewLimiter(cfg.SubmitRate, max(cfg.SubmitBurst, 1))
	}

	return s
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.corsHandler().Handler)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Get("/highscore", s.handleGetHighScore)
	r.Post("/highscore", s.handlePostHighScore)

	return r
}

// corsHandler allows browser clients such as the original web game.
func (s *Server) corsHandler() *cors.Cors {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
}

// Start begins listening in a goroutine. It returns when the socket is bound.
func (s *Server) Start() (net.Addr, error) {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", "error", err)
		}
	}()

	s.logger.Info("High-score API listening", "addr", ln.Addr().String())
	return ln.Addr(), nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// ========== Handlers ==========

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// GET /highscore
func (s *Server) handleGetHighScore(w http.ResponseWriter, r *http.Request) {
	rec, err := s.keeper.Best(r.Context())
	if err != nil {
		s.logger.Error("Failed to read high score", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read high score")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// submitResponse mirrors highscore.Client's expectation.
type submitResponse struct {
	highscore.Record
	NewRecord bool `json:"new_record"`
}

// POST /highscore
func (s *Server) handlePostHighScore(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many submissions")
		return
	}

	var rec highscore.Record
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	best, won, err := s.keeper.Submit(r.Context(), rec)
	if errors.Is(err, highscore.ErrInvalidRecord) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("Failed to submit high score", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save high score")
		return
	}

	if won {
		s.logger.Info("New high score", "name", best.Name, "score", best.Score)
	}
	writeJSON(w, http.StatusOK, submitResponse{Record: best, NewRecord: won})
}

// ========== Helpers ==========

// logRequests logs every request and records its metrics.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.duration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
