package list_runs

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/get_run"
)

// SpannerListRunsQuery lists journaled runs of one product, newest first.
type SpannerListRunsQuery struct {
	Client *spanner.Client
}

func NewSpannerListRunsQuery(client *spanner.Client) *SpannerListRunsQuery {
	return &SpannerListRunsQuery{Client: client}
}

func (q *SpannerListRunsQuery) ListRuns(ctx context.Context, productID string, limit, offset int) ([]*dto.RunDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT run_id, product_id, action, state, status, message, cause, steps,
		             started_at, completed_at
		      FROM reconciliation_runs
		      WHERE product_id = @product_id
		      ORDER BY started_at DESC, run_id
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"product_id": productID,
			"limit":      int64(limit),
			"offset":     int64(offset),
		},
	}
	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*dto.RunDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		run, err := get_run.ScanRun(row)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
}
