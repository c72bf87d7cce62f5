package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

// Run is the journal record of one finished action.
type Run struct {
	RunID       string
	ProductID   string
	Action      string
	State       domain.ReconcileState
	Outcome     domain.Outcome
	Steps       []domain.StepResult
	StartedAt   time.Time
	CompletedAt time.Time
}

// RunRepo is the write-side repository interface for reconciliation runs.
// Methods return Spanner mutations; they do not apply them.
type RunRepo interface {
	// InsertMut returns a mutation that inserts the run (or nil if none).
	InsertMut(r *Run) *spanner.Mutation
}

// Journal is the read side of the reconciliation journal.
type Journal interface {
	GetRun(ctx context.Context, runID string) (*dto.RunDTO, error)
	ListRuns(ctx context.Context, productID string, limit, offset int) ([]*dto.RunDTO, error)
}
