package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/werewolfd/internal/game"
	"github.com/lox/werewolfd/internal/randutil"
)

// Server represents the WebSocket server. Channels are created lazily:
// the first hello naming a channel brings it up with a fresh session in
// the Setup stage.
type Server struct {
	addr       string
	adminToken string
	upgrader   websocket.Upgrader
	registry   *game.ConfigRegistry
	results    *ResultsWriter
	clock      quartz.Clock
	seed       int64

	connections map[*Connection]bool
	channels    map[string]*Channel
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a new WebSocket server
func NewServer(addr string, adminToken string, registry *game.ConfigRegistry, results *ResultsWriter, seed int64, clock quartz.Clock, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr:       addr,
		adminToken: adminToken,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		registry:    registry,
		results:     results,
		clock:       clock,
		seed:        seed,
		connections: make(map[*Connection]bool),
		channels:    make(map[string]*Channel),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// ChannelFor returns the channel with the given name, creating it on
// first use. Names are case-insensitive.
func (s *Server) ChannelFor(name string) *Channel {
	key := lower(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.channels[key]; ok {
		return ch
	}

	// Offset the seed per channel so sessions don't share sequences.
	ch := NewChannel(key, s.registry, s.results, s.logger, randutil.New(s.seed+int64(len(s.channels))), s.clock)
	s.channels[key] = ch
	s.logger.Info("Channel created", "channel", key, "session", ch.Session().ID())
	return ch
}

func (s *Server) isAdminToken(token string) bool {
	if s.adminToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.adminToken), []byte(token)) == 1
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleStats serves an aggregate of the recorded game results
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.results.Summarize(r.Context())
	if err != nil {
		s.logger.Error("Failed to summarize results", "error", err)
		http.Error(w, "failed to summarize results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.logger.Error("Failed to encode stats", "error", err)
	}
}

func lower(s string) string {
	return strings.ToLower(s)
}
