package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/fortuna/esake/internal/publisher"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventSource delivers box score events until ctx is done.
type EventSource interface {
	Consume(ctx context.Context, fn func(publisher.BoxScoreEvent)) error
}

// Server pushes freshly extracted box scores to websocket subscribers.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	source EventSource

	once   sync.Once
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a websocket server. source may be nil, in which case
// only BroadcastBoxScore feeds subscribers.
func NewServer(source EventSource) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		hub:    NewHub(),
		source: source,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler starts the hub and stream relay on first use and returns the routes.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		go s.hub.Run(s.ctx)
		if s.source != nil {
			go s.relay()
		}
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/boxscores", s.handleBoxScores)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.Handler(),
	}

	log.Printf("[ws] WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

func (s *Server) relay() {
	err := s.source.Consume(s.ctx, func(ev publisher.BoxScoreEvent) {
		if err := s.BroadcastBoxScore(ev); err != nil {
			log.Printf("[ws] ⚠️  Dropping event for %s: %v", ev.GameID, err)
		}
	})
	if err != nil && s.ctx.Err() == nil {
		log.Printf("[ws] ❌ Stream relay stopped: %v", err)
	}
}

// handleBoxScores upgrades the connection and subscribes it to the hub
func (s *Server) handleBoxScores(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	s.hub.add(client)

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastBoxScore sends one event to all connected clients
func (s *Server) BroadcastBoxScore(ev publisher.BoxScoreEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	s.hub.Broadcast(data)
	return nil
}

// ClientCount returns the number of connected subscribers.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
