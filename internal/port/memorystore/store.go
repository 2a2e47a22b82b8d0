// Package memorystore defines the port interface for the external durable
// memory service.
package memorystore

import (
	"context"
	"fmt"

	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/memory"
)

// StoreError wraps a store transport failure with the operation that failed.
// It matches domain.ErrStoreUnavailable under errors.Is, so callers can
// degrade without knowing the backing transport.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("memory store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == domain.ErrStoreUnavailable }

// Store is the port interface for durable memory operations. All methods
// target a namespace of the form huntready/user/{user_id}/{strategy};
// implementations must never let a query cross namespaces.
type Store interface {
	// EnsureResources makes sure the backing resources for both of a
	// user's namespaces exist. It is idempotent and safe to call on every
	// session creation.
	EnsureResources(ctx context.Context, userID string) error

	// Append durably adds one record to its namespace. Records are
	// immutable once written.
	Append(ctx context.Context, rec memory.Record) error

	// Query returns up to limit records from a namespace, most recent
	// first. An empty namespace yields an empty slice, not an error.
	Query(ctx context.Context, userID string, strategy memory.Strategy, limit int) ([]memory.Record, error)

	// Healthy reports whether the store is currently reachable. Callers
	// use it to decide between memory-backed and degraded operation.
	Healthy(ctx context.Context) bool
}
