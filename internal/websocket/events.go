package websocket

import (
	"encoding/json"
	"log"
)

// Event is the envelope pushed to connected clients whenever the ledger
// appends a notification.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publish marshals and broadcasts an event without blocking the caller.
// A nil hub (tests, demo scripts) is a no-op.
func (h *Hub) Publish(event string, data interface{}) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("websocket: failed to marshal %s event: %v", event, err)
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		// No Run loop draining the channel; drop rather than block a mutation.
	}
}
