package live

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/Dev-06-06/cricket-tracker/internal/match"
	"github.com/Dev-06-06/cricket-tracker/internal/scoring"
)

// Dispatcher routes inbound socket events to scoring engine operations.
// Engine errors become error acknowledgments to the submitting client only;
// successful mutations are broadcast by the engine itself.
type Dispatcher struct {
	engine *scoring.Engine
	hub    *Hub
}

// NewDispatcher creates a dispatcher over the given engine and hub.
func NewDispatcher(engine *scoring.Engine, hub *Hub) *Dispatcher {
	return &Dispatcher{engine: engine, hub: hub}
}

type matchRef struct {
	MatchID uint `json:"matchId"`
}

type tossEvent struct {
	MatchID    uint             `json:"matchId"`
	TossWinner string           `json:"tossWinner"`
	TossChoice match.TossChoice `json:"tossChoice"`
}

type openersEvent struct {
	MatchID      uint `json:"matchId"`
	StrikerID    uint `json:"strikerId"`
	NonStrikerID uint `json:"nonStrikerId"`
	BowlerID     uint `json:"bowlerId"`
}

// deliveryPayload wraps the engine's delivery input with the legacy
// "runsOffBat" spelling of the runs field, which older clients still send.
type deliveryPayload struct {
	scoring.DeliveryInput
	RunsOffBat *int `json:"runsOffBat,omitempty"`
}

func (p *deliveryPayload) input() scoring.DeliveryInput {
	in := p.DeliveryInput
	if p.RunsOffBat != nil {
		in.Runs = *p.RunsOffBat
	}
	return in
}

// deliveryEvent accepts both historical shapes: a flat payload and a payload
// with the delivery nested under deliveryData.
type deliveryEvent struct {
	MatchID uint `json:"matchId"`
	deliveryPayload
	DeliveryData *deliveryPayload `json:"deliveryData,omitempty"`
}

func (ev *deliveryEvent) input() scoring.DeliveryInput {
	if ev.DeliveryData != nil {
		return ev.DeliveryData.input()
	}
	return ev.deliveryPayload.input()
}

type batterEvent struct {
	MatchID  uint `json:"matchId"`
	BatterID uint `json:"batterId"`
}

type bowlerEvent struct {
	MatchID  uint `json:"matchId"`
	BowlerID uint `json:"bowlerId"`
}

// Handle processes one inbound message from a client.
func (d *Dispatcher) Handle(c *Client, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.EmitError("error", "Malformed message")
		return
	}

	switch msg.Event {
	case "createMatch":
		d.handleCreateMatch(c, msg.Data)

	case "joinMatch", "join_match":
		d.handleJoinMatch(c, msg.Data)

	case "tossResult":
		var ev tossEvent
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "matchError", d.engine.RecordToss(ev.MatchID, ev.TossWinner, ev.TossChoice))

	case "setOpeners":
		var ev openersEvent
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "matchError", d.engine.SetOpeners(ev.MatchID, ev.StrikerID, ev.NonStrikerID, ev.BowlerID))

	case "delivery", "umpire_update":
		var ev deliveryEvent
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "error", d.engine.ApplyDelivery(ev.MatchID, ev.input()))

	case "undo_delivery":
		var ev matchRef
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "error", d.engine.UndoLastDelivery(ev.MatchID))

	case "setNewBatter":
		var ev batterEvent
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "matchError", d.engine.SetNewBatter(ev.MatchID, ev.BatterID))

	case "setNewBowler":
		var ev bowlerEvent
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "matchError", d.engine.SetNewBowler(ev.MatchID, ev.BowlerID))

	case "swapStriker":
		var ev matchRef
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "matchError", d.engine.SwapStrikers(ev.MatchID))

	case "complete_match":
		var ev matchRef
		if !decode(c, msg.Data, &ev) {
			return
		}
		d.reply(c, "error", d.engine.CompleteMatch(ev.MatchID))

	default:
		c.EmitError("error", "Unknown event: "+msg.Event)
	}
}

func (d *Dispatcher) handleCreateMatch(c *Client, data json.RawMessage) {
	var in scoring.CreateMatchInput
	if !decode(c, data, &in) {
		return
	}

	m, err := d.engine.CreateMatch(in)
	if err != nil {
		c.EmitError("matchError", userMessage(err, "Failed to create match"))
		return
	}

	c.Emit("matchCreated", map[string]uint{"matchId": m.ID})
	if state, err := d.engine.Snapshot(m.ID); err == nil {
		c.Emit("matchState", state)
	}
}

func (d *Dispatcher) handleJoinMatch(c *Client, data json.RawMessage) {
	var ev matchRef
	if !decode(c, data, &ev) {
		return
	}

	d.hub.Join(ev.MatchID, c)
	log.Printf("live: client %s joined match %d", c.ID, ev.MatchID)

	state, err := d.engine.Snapshot(ev.MatchID)
	if err != nil {
		if !errors.Is(err, scoring.ErrMatchNotFound) {
			c.EmitError("error", "Failed to load match state")
		}
		return
	}
	c.Emit("matchState", state)
}

// reply converts an engine error into an error acknowledgment on the given
// event name; nil errors need no reply because the engine already broadcast.
func (d *Dispatcher) reply(c *Client, errEvent string, err error) {
	if err == nil {
		return
	}
	c.EmitError(errEvent, userMessage(err, "Operation failed"))
}

func decode(c *Client, data json.RawMessage, dest interface{}) bool {
	if err := json.Unmarshal(data, dest); err != nil {
		c.EmitError("error", "Malformed event payload")
		return false
	}
	return true
}

// userMessage maps engine errors to client-safe messages. Unexpected errors
// are logged and masked behind the fallback.
func userMessage(err error, fallback string) string {
	var vErr *scoring.ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Reason
	case errors.Is(err, scoring.ErrMatchNotFound):
		return "Match not found"
	case errors.Is(err, scoring.ErrPlayerNotFound):
		return "Player not found"
	case errors.Is(err, scoring.ErrMatchCompleted):
		return "Match already completed"
	}
	log.Printf("live: %s: %v", fallback, err)
	return fallback
}
