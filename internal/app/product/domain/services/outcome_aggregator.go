package services

import (
	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
)

// AggregateOutcome folds the per-step results of a run into the single
// outcome returned to the caller.
//
// The first failing step in sequence order decides the message, whatever the
// order in which steps completed. A failed update (or any non-image step) is
// reported with its own cause. A failed image step is reported as a partial
// failure when at least one other image step of the run succeeded.
func AggregateOutcome(results []domain.StepResult) domain.Outcome {
	var first *domain.StepResult
	anyImageSucceeded := false

	for i := range results {
		r := results[i]
		if r.IsImageStep() && r.Success {
			anyImageSucceeded = true
		}
		if !r.Success && first == nil {
			first = &results[i]
		}
	}

	if first == nil {
		return domain.SuccessOutcome()
	}

	cause := first.Cause
	if first.IsImageStep() && anyImageSucceeded {
		cause = domain.CausePartial
	}
	return domain.ErrorOutcome(first.ErrorMessage, cause)
}
