package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pricecard/internal/pricing"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local single-operator tool, any origin may connect
	},
}

// Hub tracks live WebSocket connections by customer session
type Hub struct {
	mu     sync.Mutex
	conns  map[*WSConnection]bool
	server *Server
}

// NewHub creates an empty hub
func NewHub(s *Server) *Hub {
	return &Hub{conns: make(map[*WSConnection]bool), server: s}
}

// WSConnection maintains one WebSocket connection with a client
type WSConnection struct {
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	hub       *Hub
}

// wsRequest represents a selection change sent over the socket
type wsRequest struct {
	Action     string `json:"action"` // "set_quantity" or "toggle_modifier"
	ItemID     string `json:"itemId,omitempty"`
	ModifierID string `json:"modifierId,omitempty"`
	Delta      int    `json:"delta,omitempty"`
}

// handleWebSocket upgrades the request and starts the connection pumps
func (s *Server) handleWebSocket(c *gin.Context) {
	id, _ := s.session(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	wsConn := &WSConnection{
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: id,
		hub:       s.hub,
	}
	s.hub.register(wsConn)

	go wsConn.writePump()
	go wsConn.readPump()

	// Greet with the current quote so the client renders immediately.
	s.hub.PushQuote(id)
}

func (h *Hub) register(c *WSConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
}

func (h *Hub) unregister(c *WSConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// PushQuote sends a fresh quote to every connection of one session
func (h *Hub) PushQuote(sessionID string) {
	payload, ok := h.quotePayload(sessionID)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if c.sessionID != sessionID {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop rather than block the edit path.
		}
	}
}

// BroadcastQuotes recomputes and sends quotes to all connected sessions,
// used after a configuration edit changes every price at once
func (h *Hub) BroadcastQuotes() {
	h.mu.Lock()
	sessions := make(map[string][]*WSConnection)
	for c := range h.conns {
		sessions[c.sessionID] = append(sessions[c.sessionID], c)
	}
	h.mu.Unlock()

	for id, conns := range sessions {
		payload, ok := h.quotePayload(id)
		if !ok {
			continue
		}
		for _, c := range conns {
			select {
			case c.send <- payload:
			default:
			}
		}
	}
}

func (h *Hub) quotePayload(sessionID string) ([]byte, bool) {
	sel := h.server.sessionByID(sessionID)
	quote := pricing.Calculate(h.server.config.Snapshot(), sel.Cart(), sel.ActiveModifiers())

	payload, err := json.Marshal(gin.H{"type": "quote", "quote": quote})
	if err != nil {
		h.server.log.WithError(err).Warn("quote payload marshal failed")
		return nil, false
	}
	return payload, true
}

// readPump pumps selection changes from the client into the stores
func (c *WSConnection) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.server.log.WithError(err).Warn("websocket read failed")
			}
			break
		}
		c.handleMessage(message)
	}
}

// writePump pumps quote updates out to the client
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage applies a selection change and answers with a fresh quote
func (c *WSConnection) handleMessage(message []byte) {
	var req wsRequest
	if err := json.Unmarshal(message, &req); err != nil {
		c.hub.server.log.WithError(err).Warn("discarding malformed websocket message")
		return
	}

	s := c.hub.server
	sel := s.sessionByID(c.sessionID)

	switch req.Action {
	case "set_quantity":
		cfg := s.config.Snapshot()
		for _, cat := range cfg.Categories {
			if item, ok := cat.FindItem(req.ItemID); ok {
				sel.SetQuantity(req.ItemID, item.Kind, req.Delta)
				break
			}
		}
	case "toggle_modifier":
		sel.ToggleModifier(req.ModifierID)
	default:
		return
	}

	c.hub.PushQuote(c.sessionID)
}
