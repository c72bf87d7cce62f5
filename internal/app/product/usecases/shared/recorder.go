package shared

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	commitplan "github.com/murkotick/product-sync-service/internal/pkg/committer"
	"github.com/murkotick/product-sync-service/internal/pkg/metrics"
)

// Recorder journals finished runs and counts them. Journal failures are
// logged and never change the outcome already decided for the caller.
type Recorder struct {
	RunRepo    contracts.RunRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// Plan collects the run row and its outbox event into one mutation plan.
func (r *Recorder) Plan(run *contracts.Run, ev domain.DomainEvent) (*commitplan.Plan, error) {
	plan := commitplan.NewPlan()
	plan.Add(r.RunRepo.InsertMut(run))

	if ev != nil {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return nil, err
		}
		plan.Add(r.OutboxRepo.InsertMut(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			RunID:        run.RunID,
			PayloadJSON:  payload,
			CreatedAtUTC: run.CompletedAt.UTC(),
		}))
	}
	return plan, nil
}

// Record writes the run and its event, then observes metrics and logs the outcome.
func (r *Recorder) Record(ctx context.Context, run *contracts.Run, ev domain.DomainEvent) {
	log := r.logger().With(
		zap.String("run_id", run.RunID),
		zap.String("action", run.Action),
		zap.String("product_id", run.ProductID),
	)

	plan, err := r.Plan(run, ev)
	if err == nil {
		// the caller may already be gone; the journal write is not part of its request
		err = r.Committer.Apply(context.WithoutCancel(ctx), plan)
	}
	if err != nil {
		log.Error("journal run", zap.Error(err))
	}

	r.Metrics.ObserveRun(run.Action, string(run.Outcome.Status), run.CompletedAt.Sub(run.StartedAt))

	fields := []zap.Field{
		zap.String("state", string(run.State)),
		zap.String("status", string(run.Outcome.Status)),
		zap.Int("steps", len(run.Steps)),
		zap.Duration("took", run.CompletedAt.Sub(run.StartedAt)),
	}
	if run.Outcome.IsSuccess() {
		log.Info("action finished", fields...)
		return
	}
	log.Warn("action failed", append(fields,
		zap.String("cause", string(run.Outcome.Cause)),
		zap.String("message", run.Outcome.Message))...)
}

func (r *Recorder) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// FailedEvent builds the event journaled with every error outcome.
func FailedEvent(run *contracts.Run) *domain.ProductReconcileFailedEvent {
	failed := 0
	for _, s := range run.Steps {
		if !s.Success {
			failed++
		}
	}
	return &domain.ProductReconcileFailedEvent{
		ProductID:   run.ProductID,
		RunID:       run.RunID,
		Action:      run.Action,
		Message:     run.Outcome.Message,
		Cause:       run.Outcome.Cause,
		FailedSteps: failed,
		FailedAt:    run.CompletedAt,
	}
}
