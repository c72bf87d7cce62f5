package queries

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/get_run"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_runs"
)

// SpannerJournal is an infrastructure adapter that satisfies contracts.Journal.
// It composes the individual query implementations.
type SpannerJournal struct {
	getQ  *get_run.SpannerGetRunQuery
	listQ *list_runs.SpannerListRunsQuery
}

func NewSpannerJournal(client *spanner.Client) *SpannerJournal {
	return &SpannerJournal{
		getQ:  get_run.NewSpannerGetRunQuery(client),
		listQ: list_runs.NewSpannerListRunsQuery(client),
	}
}

func (j *SpannerJournal) GetRun(ctx context.Context, runID string) (*dto.RunDTO, error) {
	return j.getQ.GetRun(ctx, runID)
}

func (j *SpannerJournal) ListRuns(ctx context.Context, productID string, limit, offset int) ([]*dto.RunDTO, error) {
	return j.listQ.ListRuns(ctx, productID, limit, offset)
}
