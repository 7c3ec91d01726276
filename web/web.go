// Package web provides a read-only HTTP API over a maestro ledger.
//
// The server exposes the balances, the transaction log and the integrity
// check as JSON, and pushes a reload event to Server-Sent Events clients
// whenever the stored documents change.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/robinvdvleuten/maestro/ledger"
	"github.com/robinvdvleuten/maestro/logging"
	"github.com/robinvdvleuten/maestro/storage"
	"github.com/robinvdvleuten/maestro/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Currency     string
	WatchEnabled bool
	Logger       *slog.Logger

	mu      sync.RWMutex
	ledger  *ledger.Ledger
	backend storage.Backend

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// New creates a server on 127.0.0.1:port that serves the ledger stored in backend.
func New(port int, backend storage.Backend) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Currency:   "USD",
		Logger:     logging.Discard(),
		backend:    backend,
		sseClients: make(map[chan string]struct{}),
	}
}

// Start loads the ledger and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	loadTimer := timer.Child("web.load_ledger")
	if err := s.reloadLedger(ctx); err != nil {
		loadTimer.End()
		timer.End()
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		go func() {
			err := storage.Watch(ctx, s.backend.Paths(), func() { s.handleChange(ctx) }, s.Logger)
			if err != nil {
				s.Logger.Error("file watcher stopped", "error", err)
			}
		}()
	}

	setupTimer := timer.Child("web.setup_router")
	mux := s.setupRouter()
	setupTimer.End()
	timer.End()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.Logger.Info("serving ledger", "addr", srv.Addr, "watch", s.WatchEnabled)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/banks", s.handleGetBanks)
	mux.HandleFunc("GET /api/balances", s.handleGetBalances)
	mux.HandleFunc("GET /api/transactions", s.handleGetTransactions)
	mux.HandleFunc("GET /api/check", s.handleGetCheck)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// reloadLedger loads or reloads the ledger from the backend.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadLedger(ctx context.Context) error {
	l, err := storage.Load(ctx, s.backend)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ledger = l
	s.mu.Unlock()

	return nil
}

// handleChange reloads the ledger after the stored documents changed and
// tells the connected clients.
func (s *Server) handleChange(ctx context.Context) {
	if err := s.reloadLedger(ctx); err != nil {
		s.Logger.Error("failed to reload ledger", "error", err)
		return
	}
	s.Logger.Debug("ledger reloaded")
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}

func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
