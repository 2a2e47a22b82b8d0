package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/huntready/huntready/internal/adapter/ws"
	"github.com/huntready/huntready/internal/config"
	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/memory"
	"github.com/huntready/huntready/internal/port/broadcast"
	"github.com/huntready/huntready/internal/port/memorystore"
)

// Context is the memory retrieved for one agent request, split by strategy.
type Context struct {
	Preferences []string
	Semantic    []string
	Degraded    bool // the store was unreachable; both slices are empty
}

// MemoryService wraps the store with the retrieval, persistence, and seeding
// flows that agents hook into.
type MemoryService struct {
	store memorystore.Store
	hub   broadcast.Broadcaster
	cfg   config.Memory
	log   *slog.Logger
}

// NewMemoryService creates a MemoryService.
func NewMemoryService(store memorystore.Store, hub broadcast.Broadcaster, cfg config.Memory, log *slog.Logger) *MemoryService {
	return &MemoryService{store: store, hub: hub, cfg: cfg, log: log}
}

// Retrieve loads both of the user's namespaces in parallel, bounded by the
// configured retrieval budget. Store failure never propagates: the result is
// marked degraded and generation proceeds without memory.
func (m *MemoryService) Retrieve(ctx context.Context, userID string) Context {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.RetrievalTimeout)
	defer cancel()

	var prefs, sems []memory.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prefs, err = m.store.Query(gctx, userID, memory.StrategyPreference, m.cfg.QueryLimit)
		return err
	})
	g.Go(func() error {
		var err error
		sems, err = m.store.Query(gctx, userID, memory.StrategySemantic, m.cfg.QueryLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		m.log.Warn("memory retrieval failed, continuing without context", "user_id", userID, "error", err)
		return Context{Degraded: true}
	}

	return Context{
		Preferences: contents(prefs),
		Semantic:    contents(sems),
	}
}

// Persist classifies and durably stores one statement. Failures are logged
// and swallowed; persistence is always best-effort relative to the response
// already produced.
func (m *MemoryService) Persist(ctx context.Context, userID, content, tag string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	rec := memory.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Strategy:  memory.Classify(content),
		Content:   content,
		Tag:       tag,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.store.Append(ctx, rec); err != nil {
		m.log.Warn("memory persist failed", "user_id", userID, "strategy", rec.Strategy, "error", err)
	}
}

// Seed validates and bulk-writes structured product data into the user's
// namespaces. Unlike Persist, seeding reports failure: the caller asked for a
// durable write and needs to know whether it happened.
func (m *MemoryService) Seed(ctx context.Context, userID string, req memory.SeedRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := m.store.EnsureResources(ctx, userID); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	records := []memory.Record{{
		ID:        uuid.NewString(),
		UserID:    userID,
		Strategy:  memory.StrategySemantic,
		Content:   req.ProductContext(),
		Tag:       req.ProductName,
		CreatedAt: time.Now().UTC(),
	}}

	if strings.TrimSpace(req.Tone) != "" {
		records = append(records, memory.Record{
			ID:        uuid.NewString(),
			UserID:    userID,
			Strategy:  memory.StrategyPreference,
			Content:   fmt.Sprintf("User prefers a %s tone for launch communications", req.Tone),
			Tag:       req.ProductName,
			CreatedAt: time.Now().UTC(),
		})
	}

	written := 0
	for _, rec := range records {
		if err := m.store.Append(ctx, rec); err != nil {
			return written, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		written++
	}

	m.hub.BroadcastEvent(ctx, ws.EventMemorySeeded, ws.MemorySeededEvent{
		UserID:        userID,
		ProductName:   req.ProductName,
		RecordsSeeded: written,
	})

	m.log.Info("memory seeded", "user_id", userID, "product", req.ProductName, "records", written)
	return written, nil
}

// Summary recomputes the read-only aggregate of both namespaces. A store
// outage yields an empty, degraded summary rather than an error.
func (m *MemoryService) Summary(ctx context.Context, userID, sessionID string) memory.Summary {
	mc := m.Retrieve(ctx, userID)
	return memory.Summary{
		UserID:           userID,
		SessionID:        sessionID,
		Preferences:      emptyNotNil(mc.Preferences),
		SemanticMemories: emptyNotNil(mc.Semantic),
		TotalMemories:    len(mc.Preferences) + len(mc.Semantic),
		Degraded:         mc.Degraded,
	}
}

// Healthy reports current store reachability.
func (m *MemoryService) Healthy(ctx context.Context) bool {
	return m.store.Healthy(ctx)
}

func contents(recs []memory.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Content)
	}
	return out
}

// emptyNotNil keeps JSON rendering as [] instead of null.
func emptyNotNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
