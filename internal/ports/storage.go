package ports

import (
	"context"
	"errors"

	"github.com/voyago/voyago/internal/domain"
)

// ErrResultNotFound is returned by ResultStore.Get for unknown plan IDs.
var ErrResultNotFound = errors.New("plan result not found")

// ResultStore persists completed plan results by plan ID.
type ResultStore interface {
	Save(ctx context.Context, result *domain.PlanResult) error
	Get(ctx context.Context, planID string) (*domain.PlanResult, error)
	Delete(ctx context.Context, planID string) error
	List(ctx context.Context) ([]string, error)
}
