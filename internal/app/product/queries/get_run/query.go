package get_run

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/utils"
)

// SpannerGetRunQuery reads one journaled run from Spanner directly.
type SpannerGetRunQuery struct {
	Client *spanner.Client
}

func NewSpannerGetRunQuery(client *spanner.Client) *SpannerGetRunQuery {
	return &SpannerGetRunQuery{Client: client}
}

// GetRun returns spanner.ErrRowNotFound when no run has the id.
func (q *SpannerGetRunQuery) GetRun(ctx context.Context, runID string) (*dto.RunDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT run_id, product_id, action, state, status, message, cause, steps,
		             started_at, completed_at
		      FROM reconciliation_runs
		      WHERE run_id = @id`,
		Params: map[string]interface{}{"id": runID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, spanner.ErrRowNotFound
	}
	if err != nil {
		return nil, err
	}
	return ScanRun(row)
}

// ScanRun maps a reconciliation_runs row, selected in column order, to a RunDTO.
func ScanRun(row *spanner.Row) (*dto.RunDTO, error) {
	var (
		id, productID, action string
		state, status         string
		message, cause        spanner.NullString
		steps                 string
		startedAt, completed  time.Time
	)
	if err := row.Columns(&id, &productID, &action, &state, &status, &message, &cause, &steps,
		&startedAt, &completed); err != nil {
		return nil, err
	}

	out := &dto.RunDTO{
		RunID:       id,
		ProductID:   productID,
		Action:      action,
		State:       state,
		Status:      status,
		StartedAt:   utils.FormatTimestamp(startedAt),
		CompletedAt: utils.FormatTimestamp(completed),
	}
	if message.Valid {
		out.Message = message.StringVal
	}
	if cause.Valid {
		out.Cause = cause.StringVal
	}
	if err := json.Unmarshal([]byte(steps), &out.Steps); err != nil {
		return nil, fmt.Errorf("decode steps of run %s: %w", id, err)
	}
	return out, nil
}
