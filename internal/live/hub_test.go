package live

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesRoomOnly(t *testing.T) {
	hub := NewHub()
	inRoom := newTestClient(hub)
	otherRoom := newTestClient(hub)

	hub.Join(1, inRoom)
	hub.Join(2, otherRoom)

	hub.Broadcast(1, "matchState", map[string]int{"totalRuns": 42})

	raw := <-inRoom.out
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "matchState", msg.Event)

	select {
	case <-otherRoom.out:
		t.Fatal("client in another room received the broadcast")
	default:
	}
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)

	hub.Join(1, c)
	hub.Leave(1, c)
	hub.Broadcast(1, "matchState", nil)

	select {
	case <-c.out:
		t.Fatal("client received a broadcast after leaving")
	default:
	}
}

func TestHubRemoveClosesClientChannel(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)
	hub.Join(1, c)
	hub.Join(7, c)

	hub.Remove(c)

	_, open := <-c.out
	assert.False(t, open, "outbound channel should be closed on removal")

	// Rooms were emptied; broadcasting must not panic on the closed channel.
	hub.Broadcast(1, "matchState", nil)
	hub.Broadcast(7, "matchState", nil)
}

func TestHubSkipsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{ID: uuid.New(), hub: hub, out: make(chan []byte, 1)}
	hub.Join(1, slow)

	hub.Broadcast(1, "matchState", map[string]int{"n": 1})
	hub.Broadcast(1, "matchState", map[string]int{"n": 2}) // dropped, channel full

	raw := <-slow.out
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))

	var payload map[string]int
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, 1, payload["n"])

	select {
	case <-slow.out:
		t.Fatal("second broadcast should have been dropped")
	default:
	}
}
