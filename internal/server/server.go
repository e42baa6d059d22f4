// Package server exposes an Engine to viewers over websocket: snapshots stream out,
// commands stream in.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/formations/internal/core/events/bus"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/simulation"
)

// Engine is the part of simulation.Engine the server drives.
type Engine interface {
	Submit(cmd simulation.Command) error
	Snapshot() simulation.Snapshot
	Stats() simulation.Stats
}

// Config holds server configuration
type Config struct {
	Address    string `yaml:"address"`
	MaxClients int    `yaml:"max_clients"`
	// SendBuffer is the number of frames queued per client; a slow client drops frames
	// instead of stalling the engine.
	SendBuffer      int           `yaml:"send_buffer"`
	MaxMessageSize  int64         `yaml:"max_message_size"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Address:         "127.0.0.1:8080",
		MaxClients:      256,
		SendBuffer:      8,
		MaxMessageSize:  64 * 1024,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server streams engine snapshots to websocket clients and feeds their commands back.
type Server struct {
	config Config
	engine Engine
	bus    bus.EventBus
	logger log.Log

	upgrader websocket.Upgrader

	clients     sync.Map // map[string]*client
	clientCount atomic.Int64

	running atomic.Bool
	closed  atomic.Bool

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	sub        bus.Subscription
	serveErr   chan error
}

// NewServer creates a server for engine. Snapshots are taken from the simulation topic
// of eventBus.
func NewServer(config Config, engine Engine, eventBus bus.EventBus, logger log.Log) *Server {
	def := DefaultConfig()
	if config.MaxClients <= 0 {
		config.MaxClients = def.MaxClients
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = def.SendBuffer
	}
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = def.MaxMessageSize
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = def.WriteTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = def.ShutdownTimeout
	}

	return &Server{
		config: config,
		engine: engine,
		bus:    eventBus,
		logger: logger.With(log.Component("server")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler serves /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start subscribes to snapshots and starts listening.
func (s *Server) Start(_ context.Context) error {
	if s.closed.Load() {
		return ErrServerClosed
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.subscribe(); err != nil {
		s.running.Store(false)
		return err
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.unsubscribe()
		s.running.Store(false)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.serveErr = make(chan error, 1)

	go func(srv *http.Server, errs chan<- error) {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}(s.httpServer, s.serveErr)

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Stop shuts the listener down and disconnects every client.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Stopping server")
	s.unsubscribe()

	// hijacked websocket connections are not tracked by Shutdown
	s.clients.Range(func(_, value any) bool {
		value.(*client).close()
		return true
	})

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
		s.httpServer = nil
		s.listener = nil
	}

	s.logger.Info("Server stopped")
	return err
}

// Close stops the server for good.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.running.Load() {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Stop(ctx)
	}
	return nil
}

// Run starts the server and blocks until ctx is done or serving fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	serveErr := s.serveErr
	s.mu.Unlock()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if stopErr := s.Stop(shutdownCtx); stopErr != nil && !errors.Is(stopErr, ErrServerNotRunning) {
		err = errors.Join(err, stopErr)
	}
	return err
}

// Addr is the bound listen address, or nil when not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stats contains server statistics
type Stats struct {
	Clients int64            `json:"clients"`
	Running bool             `json:"running"`
	Engine  simulation.Stats `json:"engine"`
	Bus     bus.Metrics      `json:"bus"`
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	stats := Stats{
		Clients: s.clientCount.Load(),
		Running: s.running.Load(),
		Engine:  s.engine.Stats(),
	}
	if s.bus != nil {
		stats.Bus = s.bus.Metrics()
	}
	return stats
}

func (s *Server) subscribe() error {
	if s.bus == nil {
		return nil
	}
	sub, err := s.bus.Subscribe(simulation.Topic, simulation.EventSnapshot, s.onSnapshot)
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

func (s *Server) unsubscribe() {
	if s.sub == nil {
		return
	}
	_ = s.bus.Unsubscribe(s.sub)
	s.sub = nil
}

// onSnapshot runs on the engine goroutine and must not block.
func (s *Server) onSnapshot(ev bus.Event) error {
	snap, ok := ev.Data().(simulation.Snapshot)
	if !ok {
		return fmt.Errorf("%w: %T", ErrInvalidMessage, ev.Data())
	}
	if s.clientCount.Load() == 0 {
		return nil
	}
	f, err := newFrame(snap)
	if err != nil {
		return err
	}
	s.broadcast(f)
	return nil
}

func (s *Server) broadcast(f frame) {
	s.clients.Range(func(_, value any) bool {
		value.(*client).offer(f)
		return true
	})
}

// frame is one encoded snapshot, shared by every client.
type frame struct {
	checksum uint64
	payload  []byte
}

func newFrame(snap simulation.Snapshot) (frame, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return frame{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return frame{checksum: snap.Checksum(), payload: payload}, nil
}
