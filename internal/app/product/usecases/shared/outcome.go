package shared

import (
	"errors"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
)

// ValidationOutcome maps a draft validation failure to the caller-facing outcome.
func ValidationOutcome(err error) domain.Outcome {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Message != "" {
		return domain.ErrorOutcome(vErr.Message, domain.CauseValidation)
	}
	return domain.ErrorOutcome(err.Error(), domain.CauseValidation)
}

// CancelledOutcome is returned when the caller went away before any remote call.
func CancelledOutcome() domain.Outcome {
	return domain.ErrorOutcome(domain.MsgCancelled, domain.CauseCancelled)
}
