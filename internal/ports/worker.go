package ports

import (
	"context"

	"github.com/voyago/voyago/internal/domain"
)

// Worker is the uniform capability every specialist exposes. Workers
// are safe to invoke concurrently with themselves and each other; no
// shared mutable state exists between instances.
type Worker interface {
	// ID returns the worker's stable identifier ("explorer", "budget",
	// "food").
	ID() string

	// Capabilities lists what the worker can do, for health reporting.
	Capabilities() []string

	// Active reports whether the worker has been started.
	Active() bool

	// Start and Stop bracket the worker's lifecycle. The coordinator
	// exclusively owns both.
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// Process runs the worker's top-level task for a full request
	// context. Missing optional fields default silently; it fails only
	// on unrecoverable internal error.
	Process(ctx context.Context, req domain.TaskRequest) (*domain.WorkerReport, error)

	// Handle dispatches a typed query. A query kind the worker does not
	// implement yields (nil, nil) — "not applicable", distinct from an
	// error.
	Handle(ctx context.Context, q domain.Query) (any, error)
}
