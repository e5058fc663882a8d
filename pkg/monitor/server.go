package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"digital.vasic.assertions/pkg/checks"
)

const (
	clientBuffer = 32
	writeWait    = 10 * time.Second
)

// Message is the envelope sent to WebSocket clients. Type is
// "dashboard" for a snapshot and "event" for a runner event.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Server streams dashboard snapshots and runner events.
//
//	GET /events     server-sent events
//	GET /ws         WebSocket, one JSON Message per frame
//	GET /dashboard  current snapshot as JSON
//	GET /stats      collector statistics as JSON
//	GET /health     liveness probe
type Server struct {
	mu        sync.RWMutex
	collector *Collector
	dashboard *Dashboard
	clients   map[chan []byte]struct{}
	upgrader  websocket.Upgrader
	addr      string
	server    *http.Server
	quit      chan struct{}
	closeOnce sync.Once
}

// NewServer creates a server listening on addr. It subscribes to
// collector immediately, so events observed before Start still reach
// the dashboard.
func NewServer(addr string, collector *Collector, dashboard *Dashboard) *Server {
	s := &Server{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		clients:   make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		quit: make(chan struct{}),
	}
	collector.OnEvent(func(event checks.Event) {
		s.dashboard.Update(event)
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		s.broadcast(data)
	})
	return s
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()
	r.HandlerFunc(http.MethodGet, "/events", s.handleSSE)
	r.HandlerFunc(http.MethodGet, "/ws", s.handleWS)
	r.HandlerFunc(http.MethodGet, "/dashboard", s.handleDashboard)
	r.HandlerFunc(http.MethodGet, "/stats", s.handleStats)
	r.HandlerFunc(http.MethodGet, "/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Start serves until ctx is done or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.quit:
		}
		s.closeClients()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop shuts the server down and disconnects streaming clients.
func (s *Server) Stop(ctx context.Context) error {
	s.closeClients()
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) closeClients() {
	s.closeOnce.Do(func() { close(s.quit) })
}

func (s *Server) subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	delete(s.clients, ch)
	s.mu.Unlock()
}

// broadcast drops data for clients whose buffer is full.
func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	if data, err := json.Marshal(s.dashboard.Snapshot()); err == nil {
		fmt.Fprintf(w, "event: dashboard\ndata: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.quit:
			return
		case data := <-ch:
			fmt.Fprintf(w, "event: check\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	snap, err := json.Marshal(s.dashboard.Snapshot())
	if err != nil || s.writeWS(conn, "dashboard", snap) != nil {
		return
	}

	// Clients only listen; reading detects the close frame.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-s.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
				time.Now().Add(writeWait))
			return
		case data := <-ch:
			if s.writeWS(conn, "event", data) != nil {
				return
			}
		}
	}
}

func (s *Server) writeWS(conn *websocket.Conn, typ string, data []byte) error {
	msg, err := json.Marshal(Message{Type: typ, Data: data})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.dashboard.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.collector.Stats())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
