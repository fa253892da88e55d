package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// PlanEventsTopic is the event bus topic all plan lifecycle events are
// published on.
const PlanEventsTopic = "plan.events"

// Coordinator owns the worker lifecycle and runs the planning pipeline.
type Coordinator struct {
	explorer ports.Worker
	budget   ports.Worker
	food     ports.Worker

	bus     ports.EventBus
	store   ports.ResultStore
	metrics ports.MetricsCollector
	logger  *zap.Logger

	workerTimeout time.Duration

	mu          sync.Mutex
	activePlans int
}

// New creates a Coordinator. bus and store may be nil; events and
// persistence are then skipped.
func New(
	explorer, budget, food ports.Worker,
	bus ports.EventBus,
	store ports.ResultStore,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
	workerTimeout time.Duration,
) *Coordinator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Coordinator{
		explorer:      explorer,
		budget:        budget,
		food:          food,
		bus:           bus,
		store:         store,
		metrics:       metrics,
		logger:        logger,
		workerTimeout: workerTimeout,
	}
}

// Start starts all workers.
func (c *Coordinator) Start(ctx context.Context) error {
	for _, w := range c.workers() {
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start worker %s: %w", w.ID(), err)
		}
	}
	c.logger.Info("planner started")
	return nil
}

// Stop stops all workers, returning the first error encountered.
func (c *Coordinator) Stop(ctx context.Context) error {
	var firstErr error
	for _, w := range c.workers() {
		if err := w.Stop(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop worker %s: %w", w.ID(), err)
		}
	}
	c.logger.Info("planner stopped")
	return firstErr
}

// Workers returns the coordinated workers in their fixed reduction
// order.
func (c *Coordinator) Workers() []ports.Worker {
	return c.workers()
}

func (c *Coordinator) workers() []ports.Worker {
	return []ports.Worker{c.explorer, c.budget, c.food}
}

// PlanTrip runs the full pipeline for a request. It always returns a
// structured result; on failure Success is false and Error carries the
// reason.
func (c *Coordinator) PlanTrip(ctx context.Context, req domain.TripRequest) *domain.PlanResult {
	planID := uuid.New().String()
	logger := c.logger.With(zap.String("plan_id", planID))
	start := time.Now()

	c.metrics.RecordPlanSubmitted()
	c.trackActive(1)
	defer c.trackActive(-1)

	req.Normalize()
	if err := req.Validate(); err != nil {
		logger.Warn("request validation failed", zap.Error(err))
		c.metrics.RecordPlanCompleted("invalid", time.Since(start))
		return c.finishFailed(ctx, planID, start, err, nil)
	}

	logger.Info("plan submitted",
		zap.String("destination", req.Destination),
		zap.Float64("budget", req.Budget))
	c.publish(ctx, ports.EventPlanSubmitted, planID, map[string]any{
		"destination": req.Destination,
		"budget":      req.Budget,
	})

	itinerary, contributions, err := c.runPipeline(ctx, planID, req, logger)
	if err != nil {
		logger.Error("plan failed", zap.Error(err))
		c.metrics.RecordPlanCompleted("failed", time.Since(start))
		return c.finishFailed(ctx, planID, start, err, contributions)
	}

	result := &domain.PlanResult{
		PlanID:        planID,
		Success:       true,
		Itinerary:     itinerary,
		ProcessedAt:   time.Now(),
		Contributions: contributions,
	}
	c.save(ctx, result)
	c.publish(ctx, ports.EventPlanCompleted, planID, map[string]any{
		"total_cost": itinerary.TotalCost,
	})
	c.metrics.RecordPlanCompleted("completed", time.Since(start))
	logger.Info("plan completed",
		zap.Float64("total_cost", itinerary.TotalCost),
		zap.Duration("duration", time.Since(start)))
	return result
}

func (c *Coordinator) finishFailed(ctx context.Context, planID string, start time.Time, planErr error, contributions map[string]int) *domain.PlanResult {
	result := &domain.PlanResult{
		PlanID:        planID,
		Success:       false,
		Error:         planErr.Error(),
		ProcessedAt:   time.Now(),
		Contributions: contributions,
	}
	c.save(ctx, result)
	c.publish(ctx, ports.EventPlanFailed, planID, map[string]any{
		"error": planErr.Error(),
	})
	return result
}

func (c *Coordinator) publish(ctx context.Context, typ ports.EventType, planID string, data map[string]any) {
	if c.bus == nil {
		return
	}
	event := ports.Event{
		ID:        uuid.New().String(),
		Type:      typ,
		PlanID:    planID,
		Timestamp: time.Now(),
		Data:      data,
	}
	if err := c.bus.Publish(ctx, PlanEventsTopic, event); err != nil {
		c.logger.Error("failed to publish event",
			zap.String("event_type", string(typ)),
			zap.String("plan_id", planID),
			zap.Error(err))
	}
}

func (c *Coordinator) save(ctx context.Context, result *domain.PlanResult) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, result); err != nil {
		c.logger.Error("failed to save plan result",
			zap.String("plan_id", result.PlanID),
			zap.Error(err))
	}
}

func (c *Coordinator) trackActive(delta int) {
	c.mu.Lock()
	c.activePlans += delta
	count := c.activePlans
	c.mu.Unlock()
	c.metrics.SetActivePlans(count)
}
