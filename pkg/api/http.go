// Package api provides the HTTP API for serving historical price feed updates.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Slot0x0f/pyth-crosschain/pkg/benchmarks"
	"github.com/Slot0x0f/pyth-crosschain/pkg/logging"
	"github.com/Slot0x0f/pyth-crosschain/pkg/metrics"
	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
)

const updatesPathPrefix = "/v1/updates/price/"

// Server represents the HTTP API server.
type Server struct {
	addr   string
	client benchmarks.Client
	server *http.Server
	logger *logging.Logger
}

// NewServer creates a new HTTP API server on top of a benchmarks client.
func NewServer(addr string, client benchmarks.Client, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Server{
		addr:   addr,
		client: client,
		logger: logger,
	}
}

// Start starts the HTTP server and blocks until it is stopped.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc(updatesPathPrefix, s.handleUpdates)

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.logger.Info("Stopping HTTP server")
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleHealth handles /health endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RecordHTTPRequest("/health", "200", time.Since(start))
	}()

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleUpdates handles /v1/updates/price/{publish_time}. Feed identifiers
// are passed as repeated ids query parameters; none means the full snapshot.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.RecordHTTPRequest(updatesPathPrefix, strconv.Itoa(status), time.Since(start))
	}()

	if r.Method != http.MethodGet {
		status = http.StatusMethodNotAllowed
		http.Error(w, "method not allowed", status)
		return
	}

	publishTime, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, updatesPathPrefix), 10, 64)
	if err != nil {
		status = http.StatusBadRequest
		http.Error(w, "publish time must be a unix timestamp", status)
		return
	}

	var ids []pyth.PriceIdentifier
	for _, raw := range r.URL.Query()["ids"] {
		id, err := pyth.ParsePriceIdentifier(raw)
		if err != nil {
			status = http.StatusBadRequest
			http.Error(w, fmt.Sprintf("invalid feed id %q", raw), status)
			return
		}
		ids = append(ids, id)
	}

	result, err := s.client.GetVerifiedPriceFeeds(r.Context(), ids, publishTime)
	if err != nil {
		status = statusForError(err)
		s.logger.Error("Failed to fetch updates",
			"publish_time", publishTime, "ids", len(ids), "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

// statusForError maps client errors to HTTP status codes.
func statusForError(err error) int {
	if errors.Is(err, benchmarks.ErrEndpointNotSet) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
