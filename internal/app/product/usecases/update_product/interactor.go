package update_product

import (
	"context"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"go.uber.org/zap"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/domain/services"
	"github.com/murkotick/product-sync-service/internal/app/product/pipeline"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/pkg/clock"
)

// Action is the journal name of this usecase.
const Action = "updateProduct"

// Request represents an updateProduct submission after the parse boundary.
// Scalar fields are validated here.
type Request struct {
	ProductID         string
	Title             string
	Description       string
	Price             string
	Vendor            string
	NewImages         []domain.ImageBlob
	RemainingImageIDs []string
}

// Result carries the caller-facing outcome and the run that produced it.
type Result struct {
	RunID   string
	State   domain.ReconcileState
	Outcome domain.Outcome
	Steps   []domain.StepResult
}

// Interactor converges a remote product to a draft:
// validate -> read image manifest -> diff -> pipeline -> aggregate -> journal.
//
// Reconciliations of the same product id are serialized within this process;
// a run still waiting for the lock when ctx ends reports cancelled without
// touching the catalog. Nothing guards against another process editing the
// same product.
type Interactor struct {
	Reader   contracts.CatalogReader
	Pipeline *pipeline.Pipeline
	Locks    *locker.Locker
	Recorder *shared.Recorder
	Clock    clock.Clock
	Logger   *zap.Logger
}

func NewInteractor(reader contracts.CatalogReader, p *pipeline.Pipeline, locks *locker.Locker, recorder *shared.Recorder, clk clock.Clock, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		Reader:   reader,
		Pipeline: p,
		Locks:    locks,
		Recorder: recorder,
		Clock:    clk,
		Logger:   logger,
	}
}

// Execute never fails: every failure is reported in the returned outcome.
func (it *Interactor) Execute(ctx context.Context, req Request) Result {
	started := it.Clock.Now()
	run := pipeline.Start()
	runID := uuid.New().String()

	finish := func(r pipeline.Run, outcome domain.Outcome, ev func(*contracts.Run) domain.DomainEvent) Result {
		rec := &contracts.Run{
			RunID:       runID,
			ProductID:   req.ProductID,
			Action:      Action,
			State:       r.State,
			Outcome:     outcome,
			Steps:       r.Results,
			StartedAt:   started,
			CompletedAt: it.Clock.Now(),
		}
		it.Recorder.Record(ctx, rec, ev(rec))
		return Result{RunID: runID, State: r.State, Outcome: outcome, Steps: r.Results}
	}
	failed := func(rec *contracts.Run) domain.DomainEvent { return shared.FailedEvent(rec) }

	// 1. Validate before anything touches the remote catalog
	draft, err := domain.NewExistingProductDraft(req.ProductID, req.Title, req.Description, req.Price, req.Vendor)
	if err != nil {
		return finish(run.Fail(), shared.ValidationOutcome(err), failed)
	}

	// 2. One reconciliation per product at a time; waiting ends with ctx
	unlock, err := shared.LockProduct(ctx, it.Locks, draft.ID())
	if err != nil {
		return finish(run.Fail(), shared.CancelledOutcome(), failed)
	}
	defer unlock()

	if ctx.Err() != nil {
		return finish(run.Fail(), shared.CancelledOutcome(), failed)
	}

	// 3. Existing-image manifest from the system of record
	existing, err := it.Reader.GetProductImages(context.WithoutCancel(ctx), draft.ID())
	if err != nil {
		it.Logger.Error("read image manifest", zap.String("product_id", draft.ID()), zap.Error(err))
		return finish(run.Fail(), domain.ErrorOutcome(domain.TransportMessage(domain.StepUpdate), domain.CauseTransport), failed)
	}
	if err := domain.ValidateImageManifest(existing); err != nil {
		it.Logger.Warn("image manifest", zap.String("product_id", draft.ID()), zap.Error(err))
	}

	// 4. Diff, run, aggregate
	delta := services.DiffImages(existing, req.RemainingImageIDs, req.NewImages)
	run, err = it.Pipeline.Execute(ctx, run, draft, delta)
	if err != nil {
		it.Logger.Error("pipeline", zap.Error(err))
		return finish(run.Fail(), domain.ErrorOutcome(domain.TransportMessage(domain.StepUpdate), domain.CauseTransport), failed)
	}
	outcome := services.AggregateOutcome(run.Results)

	if !outcome.IsSuccess() {
		return finish(run, outcome, failed)
	}
	return finish(run, outcome, func(rec *contracts.Run) domain.DomainEvent {
		return &domain.ProductReconciledEvent{
			ProductID:     rec.ProductID,
			RunID:         rec.RunID,
			ImagesDeleted: len(delta.ToDelete),
			ImagesCreated: len(delta.ToCreate),
			ReconciledAt:  rec.CompletedAt,
		}
	})
}
