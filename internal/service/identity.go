// Package service implements the HuntReady use-cases on top of the ports.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/huntready/huntready/internal/adapter/ws"
	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/identity"
	"github.com/huntready/huntready/internal/port/broadcast"
	"github.com/huntready/huntready/internal/port/memorystore"
)

// IdentityService mints users and sessions and provisions their memory
// namespaces.
type IdentityService struct {
	store memorystore.Store
	hub   broadcast.Broadcaster
	log   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]identity.Session
}

// NewIdentityService creates an IdentityService.
func NewIdentityService(store memorystore.Store, hub broadcast.Broadcaster, log *slog.Logger) *IdentityService {
	return &IdentityService{
		store:    store,
		hub:      hub,
		log:      log,
		sessions: make(map[string]identity.Session),
	}
}

// CreateSession resolves the user (reusing a valid supplied ID, otherwise
// minting a fresh one) and mints a new session. Namespace provisioning
// failure downgrades the session to memory-less operation instead of failing
// the call.
func (s *IdentityService) CreateSession(ctx context.Context, req identity.CreateSessionRequest) (*identity.Session, error) {
	userID := req.ExistingUserID
	if !identity.ValidUserID(userID) {
		if userID != "" {
			s.log.Warn("ignoring malformed user id", "user_id", userID)
		}
		userID = "user_" + uuid.NewString()[:8]
	}

	memoryEnabled := true
	if err := s.store.EnsureResources(ctx, userID); err != nil {
		s.log.Warn("memory provisioning failed, session degraded", "user_id", userID, "error", err)
		memoryEnabled = false
	}

	sess := identity.Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		MemoryEnabled: memoryEnabled,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.hub.BroadcastEvent(ctx, ws.EventSessionCreated, ws.SessionCreatedEvent{
		UserID:        sess.UserID,
		SessionID:     sess.ID,
		MemoryEnabled: sess.MemoryEnabled,
	})

	s.log.Info("session created", "user_id", sess.UserID, "session_id", sess.ID, "memory_enabled", sess.MemoryEnabled)
	return &sess, nil
}

// GetSession returns a previously minted session.
func (s *IdentityService) GetSession(_ context.Context, id string) (*identity.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}
