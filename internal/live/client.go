package live

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is one websocket connection. Outbound messages go through a buffered
// channel drained by writePump so broadcasts never block on a slow peer.
type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	out  chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New(),
		hub:  hub,
		conn: conn,
		out:  make(chan []byte, 64),
	}
}

func (c *Client) send(raw []byte) {
	select {
	case c.out <- raw:
	default:
		log.Printf("live: dropping message to slow client %s", c.ID)
	}
}

// Emit sends an event to this client only. Used for request acknowledgments
// and error replies; other subscribers are unaffected.
func (c *Client) Emit(event string, payload interface{}) {
	raw, err := encodeMessage(event, payload)
	if err != nil {
		log.Printf("live: failed to encode %s reply: %v", event, err)
		return
	}
	c.send(raw)
}

// EmitError sends an error acknowledgment to this client only.
func (c *Client) EmitError(event, message string) {
	c.Emit(event, map[string]string{"message": message})
}

func (c *Client) readPump(handle func(*Client, []byte)) {
	defer func() {
		c.hub.Remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: client %s read error: %v", c.ID, err)
			}
			return
		}
		handle(c, raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
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
