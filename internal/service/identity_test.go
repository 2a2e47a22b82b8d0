package service

import (
	"context"
	"errors"
	"testing"

	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/identity"
)

func newTestIdentityService(t *testing.T, store *mockStore) (*IdentityService, *mockBroadcaster) {
	t.Helper()
	hub := &mockBroadcaster{}
	return NewIdentityService(store, hub, testLogger()), hub
}

func TestCreateSessionMintsNewUser(t *testing.T) {
	store := newMockStore()
	svc, hub := newTestIdentityService(t, store)

	sess, err := svc.CreateSession(context.Background(), identity.CreateSessionRequest{})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.UserID == "" || sess.ID == "" {
		t.Fatal("expected user and session IDs")
	}
	if !sess.MemoryEnabled {
		t.Error("expected memory enabled with a healthy store")
	}
	if store.ensureCalls != 1 {
		t.Errorf("ensure calls = %d, want 1", store.ensureCalls)
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if len(hub.events) != 1 || hub.events[0] != "session.created" {
		t.Errorf("expected session.created broadcast, got %v", hub.events)
	}
}

func TestCreateSessionReusesValidUser(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestIdentityService(t, store)
	ctx := context.Background()

	first, err := svc.CreateSession(ctx, identity.CreateSessionRequest{})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	second, err := svc.CreateSession(ctx, identity.CreateSessionRequest{ExistingUserID: first.UserID})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if second.UserID != first.UserID {
		t.Errorf("user not reused: %q vs %q", second.UserID, first.UserID)
	}
	if second.ID == first.ID {
		t.Error("sessions must be distinct")
	}
	// Provisioning an existing user's namespaces again must be harmless.
	if store.ensureCalls != 2 {
		t.Errorf("ensure calls = %d, want 2", store.ensureCalls)
	}
}

func TestCreateSessionIgnoresMalformedUserID(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestIdentityService(t, store)

	sess, err := svc.CreateSession(context.Background(), identity.CreateSessionRequest{ExistingUserID: "../escape"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.UserID == "../escape" {
		t.Error("malformed user ID must be replaced, not reused")
	}
}

func TestCreateSessionDegradesOnProvisioningFailure(t *testing.T) {
	store := newMockStore()
	store.failAll = errStoreDown
	svc, _ := newTestIdentityService(t, store)

	sess, err := svc.CreateSession(context.Background(), identity.CreateSessionRequest{})
	if err != nil {
		t.Fatalf("CreateSession must not fail on store outage: %v", err)
	}
	if sess.MemoryEnabled {
		t.Error("expected memory disabled when provisioning fails")
	}
}

func TestGetSession(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestIdentityService(t, store)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, identity.CreateSessionRequest{})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := svc.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != sess.UserID {
		t.Errorf("user = %q, want %q", got.UserID, sess.UserID)
	}

	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
