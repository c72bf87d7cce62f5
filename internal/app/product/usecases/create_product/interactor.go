package create_product

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/domain/services"
	"github.com/murkotick/product-sync-service/internal/app/product/pipeline"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/pkg/clock"
)

const Action = "createProduct"

// Request represents the create product request. At most one image is sent
// with the product.
type Request struct {
	Title       string
	Description string
	Price       string
	Vendor      string
	Image       *domain.ImageBlob
}

type Result struct {
	RunID     string
	ProductID string
	State     domain.ReconcileState
	Outcome   domain.Outcome
	Steps     []domain.StepResult
}

type Interactor struct {
	Creator  contracts.CatalogCreator
	Recorder *shared.Recorder
	Clock    clock.Clock
	Logger   *zap.Logger
}

func NewInteractor(creator contracts.CatalogCreator, recorder *shared.Recorder, clk clock.Clock, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{Creator: creator, Recorder: recorder, Clock: clk, Logger: logger}
}

func (it *Interactor) Execute(ctx context.Context, req Request) Result {
	started := it.Clock.Now()
	run := pipeline.Start()
	runID := uuid.New().String()

	var productID string
	var draft *domain.ProductDraft

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
			ev = &domain.ProductCreatedEvent{
				ProductID: productID,
				RunID:     runID,
				Title:     draft.Title(),
				Price:     draft.Price(),
				CreatedAt: rec.CompletedAt,
			}
		}
		it.Recorder.Record(ctx, rec, ev)
		return Result{RunID: runID, ProductID: productID, State: r.State, Outcome: outcome, Steps: r.Results}
	}

	draft, err := domain.NewProductDraft("", req.Title, req.Description, req.Price, req.Vendor)
	if err != nil {
		return finish(run.Fail(), shared.ValidationOutcome(err))
	}

	if ctx.Err() != nil {
		return finish(run.Fail(), shared.CancelledOutcome())
	}
	run.State, _ = run.State.Advance(domain.StateUpdating)

	res, err := it.Creator.CreateProduct(context.WithoutCancel(ctx), contracts.FieldsFromDraft(draft), req.Image)
	if err != nil {
		it.Logger.Error("create product", zap.String("title", draft.Title()), zap.Error(err))
	}
	step := domain.StepFromRemote(domain.StepCreateProduct, "", contracts.FirstRejection(res), err)
	if step.Success && res != nil {
		productID = res.ProductID
		step.Target = productID
	}
	run.Results = append(run.Results, step)
	it.Recorder.Metrics.ObserveStep(string(step.Kind), step.Success)

	outcome := services.AggregateOutcome(run.Results)
	if !outcome.IsSuccess() {
		return finish(run.Fail(), outcome)
	}
	run.State, _ = run.State.Advance(domain.StateDone)
	return finish(run, outcome)
}
