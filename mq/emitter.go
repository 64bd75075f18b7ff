package mq

import (
	"context"
	"encoding/json"
	"log"

	"atelier/rdx"
)

const notifyChannel = "notify-events"

// Event is an operator notification published to Redis. The notify
// worker picks these up and emails the operator; delivery is
// best-effort and must never fail the request that emitted it.
type Event struct {
	Kind    string            `json:"kind"` // "booking", "contact", "chat"
	Subject string            `json:"subject"`
	Fields  map[string]string `json:"fields"`
}

// Emit publishes a notification event. Errors are logged and swallowed.
func Emit(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] marshal failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, notifyChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish failed: %v", err)
	}
}
