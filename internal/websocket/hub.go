package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Editor UIs only send pings and
	// small control messages.
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The editor UI connects from a file:// or localhost origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub maintains the set of connected editor UIs and fans asset and playback
// events out to them. It implements repositories.EventPublisher.
type Hub struct {
	// Registered clients.
	clients map[string]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Outbound events awaiting fan-out.
	broadcast chan []byte

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex

	logger *zap.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			h.logger.Info("Editor connected",
				zap.String("clientID", client.id),
				zap.String("editorID", client.editorID))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("Editor disconnected", zap.String("clientID", client.id))

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- WriteData{Type: websocket.TextMessage, Payload: message}:
				default:
					// Slow consumer; drop the event rather than block playback
					h.logger.Warn("Dropping event for slow client",
						zap.String("clientID", client.id))
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish implements repositories.EventPublisher. It is called from the
// control thread and from the audio engine's completion callback goroutine.
func (h *Hub) Publish(event string, payload map[string]interface{}) {
	msg := NewEventMessage(MessageType(event), payload)
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to encode event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Event queue full, dropping event", zap.String("event", event))
	}
}

// ClientCount returns the number of connected editors
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type WriteData struct {
	// MessageType is the type of the websocket message.
	// Expect websocket.TextMessage or websocket.BinaryMessage
	Type    int
	Payload []byte
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan WriteData

	// Connection ID for this client
	id string

	// Editor ID extracted from the authenticated token
	editorID string

	// Logger
	logger *zap.Logger
}

// HandleWebSocket handles websocket requests from an authenticated editor.
func HandleWebSocket(hub *Hub, c echo.Context, editorID string, logger *zap.Logger) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan WriteData, 256),
		id:       uuid.New().String(),
		editorID: editorID,
		logger:   logger,
	}

	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	return nil
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		if messageType != websocket.TextMessage {
			c.logger.Warn("Received unknown message type", zap.Int("type", messageType))
			continue
		}
		c.processMessage(message)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(message.Type, message.Payload); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processMessage handles the small set of control messages editors send.
// The event feed is one-directional; everything else arrives over HTTP.
func (c *Client) processMessage(message []byte) {
	msgType, err := ParseMessageType(message)
	if err != nil {
		c.logger.Error("Failed to parse message", zap.Error(err))
		return
	}

	switch msgType {
	case MessageTypePing:
		pong := &EventMessage{
			BaseMessage: BaseMessage{
				Type:      MessageTypePong,
				Timestamp: time.Now().Format(time.RFC3339),
			},
		}
		data, _ := json.Marshal(pong)
		select {
		case c.send <- WriteData{Type: websocket.TextMessage, Payload: data}:
		default:
		}
	default:
		c.logger.Warn("Unknown message type", zap.String("type", string(msgType)))
		errMsg := &ErrorMessage{
			BaseMessage: BaseMessage{
				Type:      MessageTypeError,
				Timestamp: time.Now().Format(time.RFC3339),
			},
			Code:    "unknown_message_type",
			Message: fmt.Sprintf("unsupported message type %q", msgType),
		}
		data, _ := json.Marshal(errMsg)
		select {
		case c.send <- WriteData{Type: websocket.TextMessage, Payload: data}:
		default:
		}
	}
}
