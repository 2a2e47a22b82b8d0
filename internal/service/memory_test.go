package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/memory"
)

var errStoreDown = errors.New("connection refused")

func TestRetrieveSplitsByStrategy(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestMemoryService(t, store)
	ctx := context.Background()

	svc.Persist(ctx, "u1", "User prefers a casual tone", "")
	svc.Persist(ctx, "u1", "Nova is an analytics dashboard", "Nova")

	mc := svc.Retrieve(ctx, "u1")
	if mc.Degraded {
		t.Fatal("unexpected degraded retrieval")
	}
	if len(mc.Preferences) != 1 || len(mc.Semantic) != 1 {
		t.Fatalf("got %d preferences, %d semantic; want 1 and 1", len(mc.Preferences), len(mc.Semantic))
	}
}

func TestRetrieveDegradesOnStoreFailure(t *testing.T) {
	store := newMockStore()
	store.failAll = errStoreDown
	svc, _ := newTestMemoryService(t, store)

	mc := svc.Retrieve(context.Background(), "u1")
	if !mc.Degraded {
		t.Fatal("expected degraded retrieval")
	}
	if len(mc.Preferences) != 0 || len(mc.Semantic) != 0 {
		t.Fatal("degraded retrieval must carry no partial context")
	}
}

func TestRetrieveIsolatesUsers(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestMemoryService(t, store)
	ctx := context.Background()

	svc.Persist(ctx, "alice", "Nova is an analytics dashboard", "Nova")

	mc := svc.Retrieve(ctx, "bob")
	if len(mc.Preferences) != 0 || len(mc.Semantic) != 0 {
		t.Fatal("bob can see alice's memories")
	}
}

func TestPersistSwallowsStoreFailure(t *testing.T) {
	store := newMockStore()
	store.failAll = errStoreDown
	svc, _ := newTestMemoryService(t, store)

	// Must not panic or surface the error.
	svc.Persist(context.Background(), "u1", "Nova is an analytics dashboard", "")
}

func TestSeedWritesProductAndTone(t *testing.T) {
	store := newMockStore()
	svc, hub := newTestMemoryService(t, store)

	written, err := svc.Seed(context.Background(), "u1", memory.SeedRequest{
		ProductName:        "Nova",
		ProductDescription: "An AI-powered analytics dashboard",
		Tone:               "casual",
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2 (product context + tone preference)", written)
	}
	if store.count("u1", memory.StrategySemantic) != 1 {
		t.Error("expected one semantic record")
	}
	if store.count("u1", memory.StrategyPreference) != 1 {
		t.Error("expected one preference record")
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if len(hub.events) != 1 || hub.events[0] != "memory.seeded" {
		t.Errorf("expected one memory.seeded event, got %v", hub.events)
	}
}

func TestSeedValidatesBeforeWriting(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestMemoryService(t, store)

	_, err := svc.Seed(context.Background(), "u1", memory.SeedRequest{ProductName: "Nova"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if store.appendCalls != 0 || store.ensureCalls != 0 {
		t.Error("invalid seed request must not touch the store")
	}
}

func TestSeedReportsStoreFailure(t *testing.T) {
	store := newMockStore()
	store.failAll = errStoreDown
	svc, _ := newTestMemoryService(t, store)

	_, err := svc.Seed(context.Background(), "u1", memory.SeedRequest{
		ProductName:        "Nova",
		ProductDescription: "An analytics dashboard",
	})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestConcurrentSeedsBothLand(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestMemoryService(t, store)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Seed(context.Background(), "u1", memory.SeedRequest{
				ProductName:        "Nova",
				ProductDescription: "An analytics dashboard",
			}); err != nil {
				t.Errorf("Seed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.count("u1", memory.StrategySemantic); got != 2 {
		t.Fatalf("semantic records = %d, want 2 (append-only, no lost writes)", got)
	}
}

func TestSummaryCountsBothStrategies(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestMemoryService(t, store)
	ctx := context.Background()

	if _, err := svc.Seed(ctx, "u1", memory.SeedRequest{
		ProductName:        "Nova",
		ProductDescription: "An analytics dashboard",
		Tone:               "playful",
	}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	sum := svc.Summary(ctx, "u1", "s1")
	if sum.TotalMemories != len(sum.Preferences)+len(sum.SemanticMemories) {
		t.Errorf("total %d does not match parts %d + %d",
			sum.TotalMemories, len(sum.Preferences), len(sum.SemanticMemories))
	}
	if sum.TotalMemories != 2 {
		t.Errorf("total = %d, want 2", sum.TotalMemories)
	}
	if sum.Degraded {
		t.Error("unexpected degraded summary")
	}
}

func TestSummaryDegradedOnOutage(t *testing.T) {
	store := newMockStore()
	store.failAll = errStoreDown
	svc, _ := newTestMemoryService(t, store)

	sum := svc.Summary(context.Background(), "u1", "")
	if !sum.Degraded {
		t.Fatal("expected degraded summary")
	}
	if sum.TotalMemories != 0 {
		t.Errorf("degraded summary total = %d, want 0", sum.TotalMemories)
	}
	if sum.Preferences == nil || sum.SemanticMemories == nil {
		t.Error("summary slices must be empty, not nil")
	}
}
