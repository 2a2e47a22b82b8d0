package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/huntready/huntready/internal/config"
	"github.com/huntready/huntready/internal/domain/memory"
	"github.com/huntready/huntready/internal/port/broadcast"
	"github.com/huntready/huntready/internal/port/llm"
	"github.com/huntready/huntready/internal/port/memorystore"
)

// Ensure mock types implement their interfaces at compile time.
var (
	_ memorystore.Store     = (*mockStore)(nil)
	_ llm.Generator         = (*mockGenerator)(nil)
	_ broadcast.Broadcaster = (*mockBroadcaster)(nil)
)

// mockStore is an in-memory memory store keyed by namespace.
type mockStore struct {
	mu          sync.Mutex
	records     map[string][]memory.Record
	ensureCalls int
	appendCalls int
	queryCalls  int
	failAll     error // when set, every method fails with this error
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string][]memory.Record)}
}

func (m *mockStore) EnsureResources(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureCalls++
	if m.failAll != nil {
		return m.failAll
	}
	for _, s := range memory.Strategies {
		ns := memory.Namespace(userID, s)
		if _, ok := m.records[ns]; !ok {
			m.records[ns] = nil
		}
	}
	return nil
}

func (m *mockStore) Append(_ context.Context, rec memory.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendCalls++
	if m.failAll != nil {
		return m.failAll
	}
	ns := memory.Namespace(rec.UserID, rec.Strategy)
	m.records[ns] = append(m.records[ns], rec)
	return nil
}

func (m *mockStore) Query(_ context.Context, userID string, strategy memory.Strategy, limit int) ([]memory.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCalls++
	if m.failAll != nil {
		return nil, m.failAll
	}
	recs := m.records[memory.Namespace(userID, strategy)]
	if len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	out := make([]memory.Record, len(recs))
	copy(out, recs)
	return out, nil
}

func (m *mockStore) Healthy(context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failAll == nil
}

func (m *mockStore) count(userID string, strategy memory.Strategy) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records[memory.Namespace(userID, strategy)])
}

// mockGenerator returns a fixed completion and counts calls.
type mockGenerator struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (m *mockGenerator) Generate(context.Context, string, float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockBroadcaster records broadcast events.
type mockBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (m *mockBroadcaster) BroadcastEvent(_ context.Context, eventType string, _ any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, eventType)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMemoryConfig() config.Memory {
	return config.Memory{
		Stream:           "MEMORY",
		HandleBucket:     "memory-handles",
		Retention:        90 * 24 * time.Hour,
		QueryLimit:       20,
		RetrievalTimeout: time.Second,
	}
}

func newTestMemoryService(t *testing.T, store *mockStore) (*MemoryService, *mockBroadcaster) {
	t.Helper()
	hub := &mockBroadcaster{}
	return NewMemoryService(store, hub, testMemoryConfig(), testLogger()), hub
}
