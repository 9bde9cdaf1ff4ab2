// Package stream broadcasts simulation frames to websocket clients so
// external front ends can render the trajectory live.
package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Frame is one broadcast snapshot of the simulation.
type Frame struct {
	T           float64     `json:"t"`
	Populations []float64   `json:"populations"`
	Extinct     []int       `json:"extinct"`
	Event       *FrameEvent `json:"event,omitempty"`
}

// FrameEvent is attached to the frame following an applied hurricane.
type FrameEvent struct {
	T      float64 `json:"t"`
	Label  string  `json:"label"`
	Damage float64 `json:"damage"`
}

// Hub fans frames out to connected clients. A single goroutine owns
// the client set; slow or dead clients are dropped rather than allowed
// to stall the broadcast.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan Frame
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Frame, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Broadcast queues a frame for delivery. Frames are dropped when the
// queue is full; the stream favors liveness over completeness.
func (h *Hub) Broadcast(f Frame) {
	select {
	case h.broadcast <- f:
	case <-h.done:
	default:
	}
}

// Handler upgrades an HTTP request and keeps the connection registered
// until the peer goes away.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		select {
		case h.register <- conn:
		case <-h.done:
			conn.Close()
			return
		}

		// Drain control frames; any read error unregisters the client.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}
}

// ClientCount reports the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case frame := <-h.broadcast:
			h.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			var failed []*websocket.Conn
			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(frame); err != nil {
					failed = append(failed, conn)
				}
			}
			if len(failed) > 0 {
				h.mu.Lock()
				for _, conn := range failed {
					delete(h.clients, conn)
					conn.Close()
				}
				h.mu.Unlock()
			}
		}
	}
}

// Close drops all clients and stops the broadcaster.
func (h *Hub) Close() error {
	close(h.done)
	h.mu.Lock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	h.wg.Wait()
	return nil
}
