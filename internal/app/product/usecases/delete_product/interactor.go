package delete_product

import (
	"context"
	"strings"

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

const Action = "deleteProduct"

type Request struct {
	ProductID string
}

type Result struct {
	RunID   string
	State   domain.ReconcileState
	Outcome domain.Outcome
	Steps   []domain.StepResult
}

// Interactor deletes a product remotely with a single call. There is no
// diffing or sequencing; a user error or transport failure is the outcome.
type Interactor struct {
	Client   contracts.CatalogClient
	Locks    *locker.Locker
	Recorder *shared.Recorder
	Clock    clock.Clock
	Logger   *zap.Logger
}

func NewInteractor(client contracts.CatalogClient, locks *locker.Locker, recorder *shared.Recorder, clk clock.Clock, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{Client: client, Locks: locks, Recorder: recorder, Clock: clk, Logger: logger}
}

func (it *Interactor) Execute(ctx context.Context, req Request) Result {
	started := it.Clock.Now()
	run := pipeline.Start()
	runID := uuid.New().String()
	productID := strings.TrimSpace(req.ProductID)

	finish := func(r pipeline.Run, outcome domain.Outcome) Result {
		rec := &contracts.Run{
			RunID:       runID,
			ProductID:   productID,
			Action:      Action,
			State:       r.State,
			Outcome:     outcome,
			Steps:       r.Results,
			StartedAt:   started,
			CompletedAt: it.Clock.Now(),
		}
		var ev domain.DomainEvent = shared.FailedEvent(rec)
		if outcome.IsSuccess() {
			ev = &domain.ProductDeletedEvent{ProductID: productID, RunID: runID, DeletedAt: rec.CompletedAt}
		}
		it.Recorder.Record(ctx, rec, ev)
		return Result{RunID: runID, State: r.State, Outcome: outcome, Steps: r.Results}
	}

	if productID == "" {
		err := domain.NewValidationError(domain.FieldProductID, domain.MsgProductIDRequired, domain.ErrMissingProductID)
		return finish(run.Fail(), shared.ValidationOutcome(err))
	}

	unlock, err := shared.LockProduct(ctx, it.Locks, productID)
	if err != nil {
		return finish(run.Fail(), shared.CancelledOutcome())
	}
	defer unlock()

	if ctx.Err() != nil {
		return finish(run.Fail(), shared.CancelledOutcome())
	}
	run.State, _ = run.State.Advance(domain.StateUpdating)

	res, err := it.Client.DeleteProduct(context.WithoutCancel(ctx), productID)
	if err != nil {
		it.Logger.Error("delete product", zap.String("product_id", productID), zap.Error(err))
	}
	step := domain.StepFromRemote(domain.StepDeleteProduct, productID, contracts.FirstRejection(res), err)
	run.Results = append(run.Results, step)
	it.Recorder.Metrics.ObserveStep(string(step.Kind), step.Success)

	outcome := services.AggregateOutcome(run.Results)
	if !outcome.IsSuccess() {
		return finish(run.Fail(), outcome)
	}
	run.State, _ = run.State.Advance(domain.StateDone)
	return finish(run, outcome)
}
