// Package server exposes computed metrics tables over a read-only HTTP/JSON
// API, so a run's results can be browsed without reopening the export files.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hydromet/streamstats/internal/hydrostats"
)

// Server serves the per-station results of a completed pipeline run.
type Server struct {
	results map[string]hydrostats.StationResults
	order   []string
	logger  *zap.SugaredLogger
	http    http.Server
}

// New creates a Server over the given results.
func New(addr string, results []hydrostats.StationResults, logger *zap.SugaredLogger) *Server {
	s := &Server{
		results: make(map[string]hydrostats.StationResults, len(results)),
		logger:  logger,
	}
	for _, res := range results {
		s.results[res.Station] = res
		s.order = append(s.order, res.Station)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/stations", s.handleStations).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/{station}/annual", s.handleAnnual).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/{station}/monthly", s.handleMonthly).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/{station}/averages/annual", s.handleAnnualAverage).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/{station}/averages/monthly", s.handleMonthlyAverages).Methods(http.MethodGet)

	s.http = http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.http.Shutdown(shutdownCtx)
	}()

	s.logger.Infof("serving results on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler returns the configured router, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("failed to encode response: %v", err)
	}
}

func (s *Server) station(w http.ResponseWriter, r *http.Request) (hydrostats.StationResults, bool) {
	name := mux.Vars(r)["station"]
	res, ok := s.results[name]
	if !ok {
		http.Error(w, "unknown station", http.StatusNotFound)
		return hydrostats.StationResults{}, false
	}
	return res, true
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.order)
}

func (s *Server) handleAnnual(w http.ResponseWriter, r *http.Request) {
	res, ok := s.station(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, toAnnualResponses(res.Annual))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	res, ok := s.station(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, toMonthlyResponses(res.Monthly))
}

func (s *Server) handleAnnualAverage(w http.ResponseWriter, r *http.Request) {
	res, ok := s.station(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, toAnnualAverageResponse(res.AnnualAverage))
}

func (s *Server) handleMonthlyAverages(w http.ResponseWriter, r *http.Request) {
	res, ok := s.station(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, toMonthlyAverageResponses(res.MonthlyAverages))
}
