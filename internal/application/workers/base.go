package workers

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// base carries the lifecycle state shared by all workers.
type base struct {
	id           string
	capabilities []string
	logger       *zap.Logger

	mu     sync.RWMutex
	active bool
}

func newBase(id string, capabilities []string, logger *zap.Logger) base {
	return base{
		id:           id,
		capabilities: capabilities,
		logger:       logger.With(zap.String("worker_id", id)),
	}
}

// ID returns the worker's stable identifier.
func (b *base) ID() string { return b.id }

// Capabilities lists what the worker can do.
func (b *base) Capabilities() []string {
	out := make([]string, len(b.capabilities))
	copy(out, b.capabilities)
	return out
}

// Active reports whether the worker has been started.
func (b *base) Active() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

// Start marks the worker active.
func (b *base) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return nil
	}
	b.active = true
	b.logger.Info("worker started")
	return nil
}

// Stop marks the worker inactive.
func (b *base) Stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return nil
	}
	b.active = false
	b.logger.Info("worker stopped")
	return nil
}
