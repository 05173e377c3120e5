package gameserver

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	// The feed is read-only commentary; any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// subscriber is one websocket connection of the commentary feed.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to every feed subscriber. A subscriber whose buffer
// is full is dropped rather than blocking the broadcaster.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{subs: make(map[*subscriber]struct{}), logger: logger}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast queues msg for every subscriber.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.send <- msg:
		default:
			h.dropLocked(s)
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		h.dropLocked(s)
	}
}

func (h *Hub) dropLocked(s *subscriber) {
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.send)
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(s)
}

// serve upgrades the request and runs the connection until it closes. hello,
// if not nil, is the first message the subscriber receives.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, hello []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Println("upgrade:", err)
		return
	}
	s := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	if hello != nil {
		s.send <- hello
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	go h.writePump(s)
	h.readPump(s)
}

// readPump discards client messages and keeps the read deadline alive with
// pongs. It returns when the connection fails.
func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.remove(s)
		_ = s.conn.Close()
	}()
	s.conn.SetReadLimit(1 << 20)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Println("write:", err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
