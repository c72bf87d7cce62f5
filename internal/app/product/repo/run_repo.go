package repo

import (
	"encoding/json"

	"cloud.google.com/go/spanner"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/models/m_run"
)

// RunRepo is the Spanner implementation of the run journal's write side.
// It returns *spanner.Mutation objects but never applies them.
type RunRepo struct{}

func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(r *contracts.Run) (map[string]interface{}, error) {
	steps := make([]dto.StepDTO, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, dto.StepDTO{
			Kind:         string(s.Kind),
			Target:       s.Target,
			Success:      s.Success,
			ErrorMessage: s.ErrorMessage,
			Cause:        string(s.Cause),
		})
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, err
	}

	var message, cause *string
	if m := r.Outcome.Message; m != "" {
		message = &m
	}
	if c := string(r.Outcome.Cause); c != "" {
		cause = &c
	}

	return m_run.BuildInsertMap(r.RunID, r.ProductID, r.Action, string(r.State), string(r.Outcome.Status),
		message, cause, string(stepsJSON), r.StartedAt.UTC(), r.CompletedAt.UTC()), nil
}

// InsertMut builds an Insert mutation for a finished run.
func (rr *RunRepo) InsertMut(r *contracts.Run) *spanner.Mutation {
	if r == nil {
		return nil
	}
	values, err := buildInsertValues(r)
	if err != nil {
		return nil
	}
	return m_run.InsertMutation(values)
}
