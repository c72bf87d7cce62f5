// Package pipeline sequences the remote mutations that converge a product in
// the catalog to a validated draft.
//
// The pipeline is not atomic. A step that succeeded is never undone when a
// later step fails, and failed steps are never retried. Callers receive every
// step result and decide how to report the partial state.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/pkg/metrics"
)

// Pipeline runs update -> delete images -> create images against the catalog.
//
// A failing update halts the run. Image steps within a group are independent:
// a failure is recorded and the remaining steps of the group still run, and
// deletions always finish before the first creation is dispatched.
type Pipeline struct {
	client      contracts.CatalogClient
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds how many image steps of one group may be in flight.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n >= 1 {
			p.concurrency = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

func New(client contracts.CatalogClient, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:      client,
		concurrency: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run is the state of one reconciliation threaded through the pipeline.
type Run struct {
	State   domain.ReconcileState
	Results []domain.StepResult
}

// Start returns a run that has entered validation.
func Start() Run {
	state, _ := domain.StateIdle.Advance(domain.StateValidating)
	return Run{State: state}
}

// Fail moves a run to failed. Terminal runs are returned unchanged.
func (r Run) Fail() Run {
	if next, err := r.State.Advance(domain.StateFailed); err == nil {
		r.State = next
	}
	return r
}

// Reconcile executes the steps for draft and delta and returns one result per
// step in step order.
func (p *Pipeline) Reconcile(ctx context.Context, draft *domain.ProductDraft, delta domain.ImageDelta) []domain.StepResult {
	run, _ := p.Execute(ctx, Start(), draft, delta)
	return run.Results
}

// Execute runs the steps on a run that finished validation. It returns an
// error only when run is not in the validating state; step failures are
// reported in the returned run.
//
// Remote calls are issued with a context detached from ctx's cancellation:
// once dispatched, a call completes or fails on its own. Steps not yet
// dispatched when ctx is done are recorded as cancelled.
func (p *Pipeline) Execute(ctx context.Context, run Run, draft *domain.ProductDraft, delta domain.ImageDelta) (Run, error) {
	state, err := run.State.Advance(domain.StateUpdating)
	if err != nil {
		return run, fmt.Errorf("pipeline: %w", err)
	}
	run.State = state

	log := p.logger.With(zap.String("product_id", draft.ID()))
	remote := context.WithoutCancel(ctx)

	var update domain.StepResult
	if ctx.Err() != nil {
		update = domain.Cancelled(domain.StepUpdate, draft.ID())
	} else {
		update = p.update(remote, draft)
	}
	p.record(log, update)
	run.Results = append(run.Results, update)

	if !update.Success {
		return run.Fail(), nil
	}

	if delta.IsEmpty() {
		run.State, _ = run.State.Advance(domain.StateDone)
		return run, nil
	}
	run.State, _ = run.State.Advance(domain.StateReconcilingImages)

	deletes := group(ctx, p, log, delta.ToDelete, func(id string) domain.StepResult {
		return p.deleteImage(remote, id)
	}, func(id string) domain.StepResult {
		return domain.Cancelled(domain.StepDeleteImage, id)
	})

	creates := group(ctx, p, log, delta.ToCreate, func(blob domain.ImageBlob) domain.StepResult {
		return p.createImage(remote, draft.ID(), blob)
	}, func(domain.ImageBlob) domain.StepResult {
		return domain.Cancelled(domain.StepCreateImage, "")
	})

	run.Results = append(run.Results, deletes...)
	run.Results = append(run.Results, creates...)

	for _, r := range run.Results {
		if !r.Success {
			return run.Fail(), nil
		}
	}
	run.State, _ = run.State.Advance(domain.StateDone)
	return run, nil
}

// group runs one step per item with bounded concurrency and returns results
// indexed like items, whatever the completion order. Failures never stop
// sibling steps.
func group[T any](ctx context.Context, p *Pipeline, log *zap.Logger, items []T, do func(T) domain.StepResult, cancelled func(T) domain.StepResult) []domain.StepResult {
	results := make([]domain.StepResult, len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, item := range items {
		if ctx.Err() != nil {
			results[i] = cancelled(item)
			p.record(log, results[i])
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = cancelled(item)
			} else {
				results[i] = do(item)
			}
			p.record(log, results[i])
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) record(log *zap.Logger, r domain.StepResult) {
	p.metrics.ObserveStep(string(r.Kind), r.Success)

	fields := []zap.Field{
		zap.String("step", string(r.Kind)),
		zap.String("target", r.Target),
	}
	if r.Success {
		log.Debug("step succeeded", fields...)
		return
	}
	log.Warn("step failed", append(fields,
		zap.String("cause", string(r.Cause)),
		zap.String("message", r.ErrorMessage))...)
}

func (p *Pipeline) update(ctx context.Context, draft *domain.ProductDraft) domain.StepResult {
	res, err := p.client.UpdateProduct(ctx, draft.ID(), contracts.FieldsFromDraft(draft))
	if err != nil {
		p.logger.Error("update product", zap.String("product_id", draft.ID()), zap.Error(err))
		return domain.StepFromRemote(domain.StepUpdate, draft.ID(), nil, err)
	}
	return domain.StepFromRemote(domain.StepUpdate, draft.ID(), contracts.FirstRejection(res), nil)
}

func (p *Pipeline) deleteImage(ctx context.Context, imageID string) domain.StepResult {
	res, err := p.client.DeleteImage(ctx, imageID)
	if err != nil {
		p.logger.Error("delete image", zap.String("image_id", imageID), zap.Error(err))
		return domain.StepFromRemote(domain.StepDeleteImage, imageID, nil, err)
	}
	return domain.StepFromRemote(domain.StepDeleteImage, imageID, contracts.FirstRejection(res), nil)
}

func (p *Pipeline) createImage(ctx context.Context, productID string, blob domain.ImageBlob) domain.StepResult {
	res, err := p.client.CreateImage(ctx, productID, blob)
	if err != nil {
		p.logger.Error("create image", zap.String("product_id", productID), zap.Error(err))
		return domain.StepFromRemote(domain.StepCreateImage, "", nil, err)
	}
	step := domain.StepFromRemote(domain.StepCreateImage, "", contracts.FirstRejection(res), nil)
	if step.Success && res != nil && res.Image != nil {
		step.Target = res.Image.ID
	}
	return step
}
