// Package server runs the preview HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultAddress is where ai-stack serve listens unless configured.
const DefaultAddress = "localhost:8787"

// Config describes the listener and its limits. Zero durations mean no
// limit.
type Config struct {
	Address string
	Handler http.Handler

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	// WriteTimeout applies to every response, including live websocket
	// sessions, so it is usually left at zero.
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxHeaderBytes int
}

// DefaultConfig serves handler on DefaultAddress. Ordinary requests are
// bounded by the timeout middleware instead of WriteTimeout.
func DefaultConfig(handler http.Handler) *Config {
	return &Config{
		Address:           DefaultAddress,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    1 << 20,
	}
}

// Server is an http.Server that can bind before it serves, so the real
// address of ":0" is known up front.
type Server struct {
	srv     *http.Server
	address string

	mu       sync.Mutex
	listener net.Listener
}

// New validates config and builds the server.
func New(config *Config) (*Server, error) {
	switch {
	case config == nil:
		return nil, errors.New("server config cannot be nil")
	case config.Handler == nil:
		return nil, errors.New("handler cannot be nil")
	}

	return &Server{
		address: config.Address,
		srv: &http.Server{
			Addr:              config.Address,
			Handler:           config.Handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
			MaxHeaderBytes:    config.MaxHeaderBytes,
		},
	}, nil
}

// Listen binds the address. Calling it twice is a no-op.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	s.listener = ln
	return nil
}

// Start serves until Shutdown or Close, binding first if needed. After a
// shutdown it returns http.ErrServerClosed.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	return s.srv.Serve(ln)
}

// Shutdown stops accepting connections and waits for active requests.
// Hijacked websocket connections are not waited for.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Close drops every connection immediately.
func (s *Server) Close() error {
	return s.srv.Close()
}

// Addr is the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.address
}
