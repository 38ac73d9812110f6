// Package watch serves a live spectator feed of headless bouts. Every frame
// the driver hands the hub a snapshot; the hub encodes it once and fans it
// out to connected websocket clients.
package watch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Config tunes the hub.
type Config struct {
	Buffer int         // frames queued per spectator before dropping
	Logger *log.Logger // optional
}

// Hub tracks spectators and broadcasts frames to them.
type Hub struct {
	logger   *log.Logger
	buffer   int
	upgrader websocket.Upgrader

	mu         sync.RWMutex
	spectators map[uint64]*spectator
	nextID     uint64
	last       []byte
	closed     bool
}

// NewHub creates an empty hub.
func NewHub(cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger: logger,
		buffer: cfg.Buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		spectators: make(map[uint64]*spectator),
	}
}

// Publish encodes v as JSON and sends it to every spectator. The frame is
// also kept for spectators who join later.
func (h *Hub) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("watch: cannot encode frame: %w", err)
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return errors.New("watch: hub closed")
	}
	h.last = data
	targets := make([]*spectator, 0, len(h.spectators))
	for _, s := range h.spectators {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.send(data)
	}
	return nil
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.spectators)
}

// Close disconnects every spectator and refuses further frames.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, s := range h.spectators {
		s.close()
		delete(h.spectators, id)
	}
}

func (h *Hub) join() (*spectator, []byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, nil, false
	}
	h.nextID++
	s := newSpectator(h.nextID, h.buffer)
	h.spectators[s.id] = s
	return s, h.last, true
}

func (h *Hub) leave(s *spectator) {
	h.mu.Lock()
	delete(h.spectators, s.id)
	h.mu.Unlock()
	s.close()
}

// ServeHTTP upgrades the request to a websocket and streams frames until
// either side goes away. Spectators cannot send anything; incoming messages
// are read only to notice a close.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	s, last, ok := h.join()
	if !ok {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return
	}
	defer h.leave(s)
	h.logger.Info("spectator joined", "id", s.id, "remote", r.RemoteAddr)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.close()
				return
			}
		}
	}()

	if last != nil {
		if err := h.write(conn, last); err != nil {
			return
		}
	}
	for {
		select {
		case frame := <-s.frames:
			if err := h.write(conn, frame); err != nil {
				h.logger.Debug("spectator write failed", "id", s.id, "err", err)
				return
			}
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			h.logger.Info("spectator left", "id", s.id)
			return
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, frame []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, frame)
}
