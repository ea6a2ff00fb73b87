package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/haldis/devcard/internal/device"
	"github.com/haldis/devcard/internal/logging"
	"github.com/haldis/devcard/internal/publicip"
	"go.uber.org/zap"
)

const (
	// DefaultListen is the listen address used when none is configured.
	DefaultListen = ":8790"

	// DefaultPushInterval is the WebSocket push period used when none
	// is configured.
	DefaultPushInterval = 5 * time.Second
)

// Config holds the share server configuration
type Config struct {
	Listen   string        // Listen address (host:port), DefaultListen if empty
	Interval time.Duration // WebSocket push period, DefaultPushInterval if zero
	LogLevel string        // Log level, silent if empty

	// Builder supplies device snapshots. A fresh default builder is
	// used when nil.
	Builder *device.Builder

	// Resolver supplies the public IP. A fresh default resolver is
	// used when nil.
	Resolver *publicip.Resolver
}

// Server serves the device card over HTTP and WebSocket
type Server struct {
	config        *Config
	builder       *device.Builder
	resolver      *publicip.Resolver
	httpServer    *http.Server
	listener      net.Listener
	upgrader      websocket.Upgrader
	wg            sync.WaitGroup
	mu            sync.Mutex
	activeClients map[string]*websocket.Conn
}

// New creates a new share server
func New(config *Config) (*Server, error) {
	// Initialize logging
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	builder := config.Builder
	if builder == nil {
		builder = device.NewBuilder()
	}
	resolver := config.Resolver
	if resolver == nil {
		resolver = publicip.NewResolver()
	}

	s := &Server{
		config:        config,
		builder:       builder,
		resolver:      resolver,
		activeClients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Anything that can reach the listen address may read the
			// card; there is no origin-based trust boundary.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler serving the share endpoints. Start
// wires it into the managed http.Server; tests mount it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile", s.handleProfile)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	addr := s.listenAddr()

	logging.Info("Starting device card share server",
		zap.String("addr", addr),
		zap.Duration("push_interval", s.interval()),
		zap.String("log_level", s.config.LogLevel),
	)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	logging.Info("Share server listening for clients",
		zap.String("addr", listener.Addr().String()),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Serve in a goroutine so we can watch for signals
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.serve(listener)
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping share server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// serve runs the HTTP server on the listener. A server closed during
// shutdown is a clean exit, not an error.
func (s *Server) serve(listener net.Listener) error {
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("share server failed: %w", err)
	}
	return nil
}

// handleProfile serves the current profile as JSON, rebuilt per request
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile := BuildProfile(r.Context(), s.builder, s.resolver)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		logging.Error("Failed to encode profile response",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
	}
}

// handleHealthz answers liveness probes
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down share server...")

	// Stop accepting connections and drain in-flight HTTP requests.
	// WebSocket connections are hijacked, so http.Server.Shutdown does
	// not cover them; they are closed explicitly below.
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down HTTP server", zap.Error(err))
	}

	// Close all active WebSocket clients
	s.mu.Lock()
	for addr, conn := range s.activeClients {
		logging.Info("Closing share client", zap.String("remote_addr", addr))
		_ = conn.Close()
	}
	s.mu.Unlock()

	// Wait for push loops to finish with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All share clients closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	case <-time.After(10 * time.Second):
		logging.Warn("Shutdown timeout after 10 seconds, forcing close")
	}

	// Sync logger
	logging.Sync()

	return nil
}

// GetActiveClients returns the number of connected WebSocket clients
func (s *Server) GetActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeClients)
}

func (s *Server) trackClient(remoteAddr string, conn *websocket.Conn) {
	s.mu.Lock()
	s.activeClients[remoteAddr] = conn
	s.mu.Unlock()
}

func (s *Server) untrackClient(remoteAddr string) {
	s.mu.Lock()
	delete(s.activeClients, remoteAddr)
	s.mu.Unlock()
}

func (s *Server) listenAddr() string {
	if s.config.Listen == "" {
		return DefaultListen
	}
	return s.config.Listen
}

func (s *Server) interval() time.Duration {
	if s.config.Interval <= 0 {
		return DefaultPushInterval
	}
	return s.config.Interval
}
