package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"packtrack/internal/service/room"

	"github.com/gorilla/websocket"
)

const (
	// pingInterval is how often the server pings the peer
	pingInterval = 30 * time.Second

	// pongWait is how long to wait for a pong before the connection
	// counts as dead
	pongWait = 60 * time.Second

	// writeWait bounds every write toward the peer
	writeWait = 10 * time.Second

	// maxMessageSize caps inbound messages (8 KB)
	maxMessageSize = 8192

	// sendBufferSize is the outbound queue per observer. A full queue
	// means the peer cannot keep up and the delivery fails instead of
	// blocking the broadcaster.
	sendBufferSize = 64
)

var errObserverClosed = errors.New("observer connection closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live observer connection bound to a single tracking
// room. It implements room.Observer: Send queues without blocking and
// reports failure when the connection is gone or saturated.
type Client struct {
	trackingID string
	conn       *websocket.Conn
	registry   *room.Registry
	send       chan []byte

	mu     sync.Mutex
	closed bool
}

// Serve upgrades an HTTP request into an observer connection,
// subscribes it to the package's tracking room and starts the
// read/write pumps. The peer receives an initial "connected" ack.
func Serve(registry *room.Registry, trackingID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		trackingID: trackingID,
		conn:       conn,
		registry:   registry,
		send:       make(chan []byte, sendBufferSize),
	}

	registry.Subscribe(trackingID, client)

	_ = client.Send(map[string]any{
		"type":        "connected",
		"tracking_id": trackingID,
		"message":     "Connected to real-time tracking",
	})

	go client.writePump()
	go client.readPump()

	return nil
}

// Send queues an event toward the peer. It never blocks: a saturated
// or closed connection yields an error and the registry drops us.
func (c *Client) Send(event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errObserverClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("observer send buffer full")
	}
}

// Close shuts the outbound queue down exactly once
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump consumes inbound frames: JSON ping messages get a pong
// reply, everything else is ignored. When the read loop ends the
// observer leaves its room and the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.registry.Unsubscribe(c.trackingID, c)
		c.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("Observer read error in room %s: %v", c.trackingID, err)
			}
			return
		}

		// Any inbound message also refreshes the liveness deadline
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		if msg.Type == "ping" {
			_ = c.Send(map[string]any{
				"type":      "pong",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		}
	}
}

// writePump drains the outbound queue and keeps the connection alive
// with protocol-level pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
