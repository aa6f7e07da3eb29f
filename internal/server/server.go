package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/lanscan/internal/logging"
	"github.com/muurk/lanscan/internal/scan"
)

// Config holds the server configuration
type Config struct {
	Listen   string // Address to bind the HTTP/WebSocket listener to
	LogLevel string
}

// Controller is the scan session control surface the server exposes over
// HTTP. *scan.Session satisfies it.
type Controller interface {
	Start() error
	Stop() error
	IsScanning() bool
	Devices() []scan.Device
}

// Server exposes scan control over HTTP and pushes scan events to connected
// WebSocket clients.
type Server struct {
	config *Config
	ctrl   Controller
	hub    *Hub
	httpd  *http.Server
}

// New creates a new Server instance
func New(config *Config, ctrl Controller, hub *Hub) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	s := &Server{
		config: config,
		ctrl:   ctrl,
		hub:    hub,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scan/start", s.handleStart)
	mux.HandleFunc("POST /api/scan/stop", s.handleStop)
	mux.HandleFunc("GET /api/scan/status", s.handleStatus)
	mux.HandleFunc("GET /api/devices", s.handleDevices)
	mux.HandleFunc("GET /ws", hub.HandleWS)

	s.httpd = &http.Server{
		Addr:              config.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Run starts the server and blocks until shutdown via SIGINT/SIGTERM.
func (s *Server) Run() error {
	logging.Info("starting lanscan server",
		zap.String("addr", s.config.Listen),
		zap.String("log_level", s.config.LogLevel),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logging.Info("received shutdown signal", zap.String("signal", sig.String()))
	}

	return s.Shutdown()
}

// Shutdown stops any running scan, disconnects clients, and closes the
// HTTP listener.
func (s *Server) Shutdown() error {
	logging.Info("shutting down server")

	if err := s.ctrl.Stop(); err != nil {
		logging.Error("failed to stop scan during shutdown", zap.Error(err))
	}
	s.hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpd.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	logging.Info("server stopped")
	return nil
}

// statusResponse is the body of GET /api/scan/status.
type statusResponse struct {
	Scanning bool `json:"scanning"`
}

// errorResponse is the body of any failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Start(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Scanning: s.ctrl.IsScanning()})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Stop(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Scanning: s.ctrl.IsScanning()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Scanning: s.ctrl.IsScanning()})
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	devices := s.ctrl.Devices()
	if devices == nil {
		devices = []scan.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
