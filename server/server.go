// Package server streams simulation stats to websocket clients. The GL
// thread publishes snapshots into a guarded holder; clients are paced by
// their own tickers and never block the simulation.
package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Snapshot is one stats frame pushed to every connected client.
type Snapshot struct {
	Type       string   `json:"type"`
	Frame      uint32   `json:"frame"`
	SimTime    float64  `json:"simTime"`
	FPS        float64  `json:"fps"`
	SelectedID int      `json:"selectedId"`
	Materials  []string `json:"materials"`
}

// Stats holds the latest snapshot across the GL thread / client goroutine
// boundary.
type Stats struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Publish replaces the current snapshot. Called from the simulation thread
// once per frame; never blocks on clients.
func (s *Stats) Publish(snap Snapshot) {
	snap.Type = "stats"
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Latest returns the most recent snapshot.
func (s *Stats) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Server serves /ws, pushing the latest snapshot at a fixed interval.
type Server struct {
	stats    *Stats
	interval time.Duration
	upgrader websocket.Upgrader
}

// New builds a Server around the shared stats holder.
func New(stats *Stats, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Server{
		stats:    stats,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP mux for the stats endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe blocks serving clients on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("stats server listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain incoming messages so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Push an initial frame so clients do not wait a full interval.
	if err := conn.WriteJSON(s.stats.Latest()); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(s.stats.Latest()); err != nil {
				return
			}
		}
	}
}
