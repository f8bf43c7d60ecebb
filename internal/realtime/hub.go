package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// IdentifyFunc resolves the optional token query parameter to a user.
type IdentifyFunc func(ctx context.Context, token string) (uint, bool)

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

type direct struct {
	userID uint
	msg    []byte
}

// Hub fans text messages out to every connection and pushes per-user
// frames to authenticated ones. All map mutations happen in Run.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	users   map[uint]map[*client]struct{}

	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	direct     chan direct
	done       chan struct{}
	closeOnce  sync.Once

	identify IdentifyFunc
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(identify IdentifyFunc, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		users:      make(map[uint]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		direct:     make(chan direct, 64),
		done:       make(chan struct{}),
		identify:   identify,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			if c.userID != 0 {
				if h.users[c.userID] == nil {
					h.users[c.userID] = make(map[*client]struct{})
				}
				h.users[c.userID][c] = struct{}{}
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				h.deliver(c, msg)
			}
			h.mu.Unlock()

		case d := <-h.direct:
			h.mu.Lock()
			for c := range h.users[d.userID] {
				h.deliver(c, d.msg)
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				h.drop(c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// deliver never blocks: a client whose buffer is full is disconnected.
func (h *Hub) deliver(c *client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.log.Warn().Uint("user_id", c.userID).Msg("websocket client too slow, dropping")
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if set := h.users[c.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.users, c.userID)
		}
	}
	close(c.send)
}

// Clients is the number of open connections.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// SendToUser pushes v as a JSON frame to every connection of userID.
func (h *Hub) SendToUser(userID uint, v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case h.direct <- direct{userID: userID, msg: msg}:
	case <-h.done:
	}
	return nil
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Handle upgrades GET /ws/live-updates.
func (h *Hub) Handle(c *gin.Context) {
	var userID uint
	if token := c.Query("token"); token != "" && h.identify != nil {
		if id, ok := h.identify(c.Request.Context(), token); ok {
			userID = id
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), userID: userID}

	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go cl.writePump()
	go cl.readPump()
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		if kind == websocket.TextMessage {
			c.hub.Broadcast(msg)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
