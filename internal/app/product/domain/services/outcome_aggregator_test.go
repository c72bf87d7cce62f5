package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
)

func TestAggregateOutcome_AllSucceeded(t *testing.T) {
	out := AggregateOutcome([]domain.StepResult{
		domain.Succeeded(domain.StepUpdate, "p1"),
		domain.Succeeded(domain.StepDeleteImage, "A"),
		domain.Succeeded(domain.StepCreateImage, ""),
	})

	assert.True(t, out.IsSuccess())
	assert.Empty(t, out.Message)
	assert.Equal(t, domain.CauseNone, out.Cause)
}

func TestAggregateOutcome_EmptyIsSuccess(t *testing.T) {
	assert.True(t, AggregateOutcome(nil).IsSuccess())
}

func TestAggregateOutcome_UpdateFailureIsAuthoritative(t *testing.T) {
	out := AggregateOutcome([]domain.StepResult{
		domain.RejectedByUserError(domain.StepUpdate, "p1", "Title taken"),
	})

	assert.Equal(t, domain.StatusError, out.Status)
	assert.Equal(t, "Title taken", out.Message)
	assert.Equal(t, domain.CauseUserError, out.Cause)
}

func TestAggregateOutcome_FirstFailureWins(t *testing.T) {
	out := AggregateOutcome([]domain.StepResult{
		domain.Succeeded(domain.StepUpdate, "p1"),
		domain.RejectedByUserError(domain.StepDeleteImage, "A", "Image A is locked"),
		domain.FailedInTransport(domain.StepDeleteImage, "B"),
		domain.Succeeded(domain.StepCreateImage, ""),
	})

	assert.Equal(t, domain.StatusError, out.Status)
	assert.Equal(t, "Image A is locked", out.Message)
	assert.Equal(t, domain.CausePartial, out.Cause)
}

func TestAggregateOutcome_ImageFailureWithoutSiblingSuccessKeepsCause(t *testing.T) {
	out := AggregateOutcome([]domain.StepResult{
		domain.Succeeded(domain.StepUpdate, "p1"),
		domain.FailedInTransport(domain.StepCreateImage, ""),
	})

	assert.Equal(t, "An error occurred while creating an image", out.Message)
	assert.Equal(t, domain.CauseTransport, out.Cause)
}

func TestAggregateOutcome_CancelledSteps(t *testing.T) {
	out := AggregateOutcome([]domain.StepResult{
		domain.Succeeded(domain.StepUpdate, "p1"),
		domain.Cancelled(domain.StepDeleteImage, "A"),
	})

	assert.Equal(t, domain.MsgCancelled, out.Message)
	assert.Equal(t, domain.CauseCancelled, out.Cause)
}
