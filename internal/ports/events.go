package ports

import (
	"context"
	"time"
)

// EventType identifies a plan lifecycle event.
type EventType string

const (
	EventPlanSubmitted  EventType = "plan.submitted"
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventWorkerDegraded EventType = "worker.degraded"
	EventPlanCompleted  EventType = "plan.completed"
	EventPlanFailed     EventType = "plan.failed"
)

// Event is a plan progress notification.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	PlanID    string         `json:"plan_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// EventHandler consumes events delivered by a subscription.
type EventHandler func(ctx context.Context, event Event) error

// EventBus publishes and delivers plan events.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
	Unsubscribe(ctx context.Context, topic string) error
	Close() error
}
