// Package health serves a liveness endpoint for the bot process.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/OddsPredictor/internal/cache"
)

// Status is the /healthz body
type Status struct {
	Status  string       `json:"status"`
	Uptime  string       `json:"uptime"`
	Leagues []string     `json:"leagues"`
	Cache   *cache.Stats `json:"cache,omitempty"`
}

// Server exposes /healthz
type Server struct {
	http    *http.Server
	started time.Time
	leagues []string
	stats   cache.StatsReporter
	logger  zerolog.Logger
}

// NewServer creates a health server; stats may be nil
func NewServer(addr string, leagues []string, stats cache.StatsReporter) *Server {
	s := &Server{
		started: time.Now(),
		leagues: leagues,
		stats:   stats,
		logger:  log.With().Str("component", "health").Logger(),
	}
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

// Router returns the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Status:  "ok",
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
		Leagues: s.leagues,
	}
	if s.stats != nil {
		st := s.stats.Stats()
		status.Cache = &st
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write health response")
	}
}

// Start serves in the background until Shutdown
func (s *Server) Start() {
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("Health server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Health server stopped")
		}
	}()
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
