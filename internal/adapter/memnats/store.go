// Package memnats implements the memory store port using NATS JetStream.
// Each (user, strategy) namespace maps to one subject on an append-only
// stream; record expiry is enforced by the stream's MaxAge retention.
package memnats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/codes"

	hrotel "github.com/huntready/huntready/internal/adapter/otel"
	"github.com/huntready/huntready/internal/config"
	"github.com/huntready/huntready/internal/domain/memory"
	"github.com/huntready/huntready/internal/port/cache"
	"github.com/huntready/huntready/internal/port/memorystore"
)

const subjectRoot = "memory"

// handle is the registry entry recording that a namespace has been
// provisioned. Stored in the KV bucket, keyed by namespace.
type handle struct {
	Namespace string    `json:"namespace"`
	CreatedAt time.Time `json:"created_at"`
}

// Store implements memorystore.Store on a JetStream stream plus a KV bucket
// acting as the namespace handle registry.
type Store struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	handles jetstream.KeyValue
	l1      cache.Cache
	cfg     config.Memory
	log     *slog.Logger
}

// Connect establishes a NATS connection and provisions the memory stream and
// the handle bucket. The stream's MaxAge is the record retention window.
func Connect(ctx context.Context, url string, cfg config.Memory, l1 cache.Cache, log *slog.Logger) (*Store, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{subjectRoot + ".>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   cfg.Retention,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: cfg.HandleBucket,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream kv create: %w", err)
	}

	log.Info("memory store connected", "url", url, "stream", cfg.Stream, "retention", cfg.Retention)
	return &Store{nc: nc, js: js, handles: kv, l1: l1, cfg: cfg, log: log}, nil
}

// EnsureResources provisions the handle for each of the user's namespaces.
// Existing handles are left untouched, so repeated calls are idempotent.
func (s *Store) EnsureResources(ctx context.Context, userID string) error {
	for _, strategy := range memory.Strategies {
		ns := memory.Namespace(userID, strategy)
		if err := s.ensureHandle(ctx, ns); err != nil {
			return &memorystore.StoreError{Op: "ensure " + ns, Err: err}
		}
	}
	return nil
}

func (s *Store) ensureHandle(ctx context.Context, namespace string) error {
	key := handleKey(namespace)

	if s.l1 != nil {
		if _, ok, _ := s.l1.Get(ctx, key); ok {
			return nil
		}
	}

	if _, err := s.handles.Get(ctx, key); err == nil {
		s.cacheHandle(ctx, key)
		return nil
	} else if !errors.Is(err, jetstream.ErrKeyNotFound) {
		return err
	}

	data, err := json.Marshal(handle{Namespace: namespace, CreatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	// Create fails if another caller won the race; that still means the
	// handle exists, which is all EnsureResources promises.
	if _, err := s.handles.Create(ctx, key, data); err != nil && !errors.Is(err, jetstream.ErrKeyExists) {
		return err
	}

	s.cacheHandle(ctx, key)
	return nil
}

func (s *Store) cacheHandle(ctx context.Context, key string) {
	if s.l1 == nil {
		return
	}
	if err := s.l1.Set(ctx, key, []byte{1}, s.cfg.HandleTTL); err != nil {
		s.log.Debug("handle cache set failed", "key", key, "error", err)
	}
}

// handleKey flattens a namespace path into a KV-safe key.
func handleKey(namespace string) string {
	return strings.ReplaceAll(namespace, "/", ".")
}

// subject returns the stream subject for a namespace.
func subject(userID string, strategy memory.Strategy) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, userID, string(strategy))
}

// Append publishes one record to its namespace subject.
func (s *Store) Append(ctx context.Context, rec memory.Record) error {
	subj := subject(rec.UserID, rec.Strategy)
	ctx, span := hrotel.StartStoreSpan(ctx, "append", subj)
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if _, err := s.js.Publish(ctx, subj, data); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &memorystore.StoreError{Op: "append " + subj, Err: err}
	}
	return nil
}

// Query reads all records on the namespace subject and returns the most
// recent limit of them, newest first. An empty namespace yields an empty
// slice.
func (s *Store) Query(ctx context.Context, userID string, strategy memory.Strategy, limit int) ([]memory.Record, error) {
	subj := subject(userID, strategy)
	ctx, span := hrotel.StartStoreSpan(ctx, "query", subj)
	defer span.End()

	cons, err := s.js.OrderedConsumer(ctx, s.cfg.Stream, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subj},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &memorystore.StoreError{Op: "query " + subj, Err: err}
	}

	var records []memory.Record
	for {
		batch, err := cons.FetchNoWait(64)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, &memorystore.StoreError{Op: "query " + subj, Err: err}
		}

		n := 0
		for msg := range batch.Messages() {
			n++
			var rec memory.Record
			if err := json.Unmarshal(msg.Data(), &rec); err != nil {
				s.log.Warn("skipping malformed memory record", "subject", subj, "error", err)
				continue
			}
			records = append(records, rec)
		}
		if batch.Error() != nil {
			span.SetStatus(codes.Error, batch.Error().Error())
			return nil, &memorystore.StoreError{Op: "query " + subj, Err: batch.Error()}
		}
		if n == 0 {
			break
		}
	}

	// The stream delivers oldest first; keep the tail and flip it.
	if len(records) > limit {
		records = records[len(records)-limit:]
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Healthy reports whether the JetStream account responds within the context
// deadline.
func (s *Store) Healthy(ctx context.Context) bool {
	if s.nc.Status() != nats.CONNECTED {
		return false
	}
	_, err := s.js.AccountInfo(ctx)
	return err == nil
}

// Close shuts down the NATS connection.
func (s *Store) Close() error {
	s.nc.Close()
	return nil
}
