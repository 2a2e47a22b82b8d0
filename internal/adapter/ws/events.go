package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventSessionCreated = "session.created"
	EventMemorySeeded   = "memory.seeded"
	EventRouteCompleted = "route.completed"
)

// SessionCreatedEvent is broadcast when a new session is minted.
type SessionCreatedEvent struct {
	UserID        string `json:"user_id"`
	SessionID     string `json:"session_id"`
	MemoryEnabled bool   `json:"memory_enabled"`
}

// MemorySeededEvent is broadcast after a successful bulk memory write.
type MemorySeededEvent struct {
	UserID        string `json:"user_id"`
	ProductName   string `json:"product_name"`
	RecordsSeeded int    `json:"records_seeded"`
}

// RouteCompletedEvent is broadcast when an agent request finishes.
type RouteCompletedEvent struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Route     string `json:"route"`
	Success   bool   `json:"success"`
	Degraded  bool   `json:"degraded,omitempty"`
}

// BroadcastEvent is a convenience method that marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
