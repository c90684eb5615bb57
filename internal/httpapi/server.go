// Package httpapi exposes a running simulation over HTTP: the latest
// snapshot as JSON, a health endpoint and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// SnapshotHolder keeps the most recent snapshot of a run. It implements
// sim.Observer so it can be attached directly to an engine.
type SnapshotHolder struct {
	mu   sync.RWMutex
	last sim.Snapshot
	seen bool
}

func (h *SnapshotHolder) OnStep(snap sim.Snapshot) {
	h.mu.Lock()
	h.last = snap
	h.seen = true
	h.mu.Unlock()
}

// Latest returns the most recent snapshot and whether one has been recorded.
func (h *SnapshotHolder) Latest() (sim.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last, h.seen
}

type Server struct {
	holder *SnapshotHolder
	log    zerolog.Logger
	srv    *http.Server
}

func NewServer(addr string, holder *SnapshotHolder, log zerolog.Logger) *Server {
	s := &Server{holder: holder, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	s.srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("http shutdown")
		}
	}()

	s.log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := s.holder.Latest()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error().Err(err).Msg("encode snapshot")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
