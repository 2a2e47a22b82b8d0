// Package identity defines the user and session domain model.
package identity

import (
	"strings"
	"time"
)

// User is an opaque, stable identifier for a launch-assistant user.
// Users are created once and never mutated or deleted by this layer.
type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is scoped to a user and created per browser/process lifetime.
// MemoryEnabled records whether the memory store was reachable when the
// session was created; sessions do not expire within this layer.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MemoryEnabled bool      `json:"memory_enabled"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateSessionRequest is the input for minting a session. ExistingUserID is
// optional; when supplied and valid, the user is reused and only a new
// session is minted.
type CreateSessionRequest struct {
	ExistingUserID string `json:"user_id,omitempty"`
}

// maxUserIDLen bounds supplied user identifiers.
const maxUserIDLen = 64

// ValidUserID reports whether a supplied user identifier is usable.
// Malformed identifiers are treated as absent by the caller (a fresh user is
// minted), never as a fatal error.
func ValidUserID(id string) bool {
	if id == "" || len(id) > maxUserIDLen {
		return false
	}
	return !strings.ContainsAny(id, " \t\n/\\.")
}
