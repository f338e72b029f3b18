package live

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the wire envelope for every socket event, in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeMessage(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Event: event, Data: data})
}

// Hub tracks connected clients and their match-room subscriptions. Rooms are
// keyed by match id; a client may watch any number of matches.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*Client]struct{})}
}

// Join subscribes a client to a match room.
func (h *Hub) Join(matchID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[matchID] = room
	}
	room[c] = struct{}{}
}

// Leave unsubscribes a client from a match room.
func (h *Hub) Leave(matchID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[matchID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, matchID)
		}
	}
}

// Remove drops a client from every room and closes its outbound channel;
// called on disconnect. Closing under the write lock means no concurrent
// Broadcast can still be sending to it.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for matchID, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, matchID)
		}
	}
	close(c.out)
}

// Broadcast publishes an event to every subscriber of a match id. It
// implements scoring.Broadcaster. Slow clients are skipped rather than
// blocking the scoring engine.
func (h *Hub) Broadcast(matchID uint, event string, payload interface{}) {
	raw, err := encodeMessage(event, payload)
	if err != nil {
		log.Printf("live: failed to encode %s broadcast: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[matchID] {
		c.send(raw)
	}
}
