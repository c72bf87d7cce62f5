package product

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/product-sync-service/internal/app/product/actions"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/queries"
	"github.com/murkotick/product-sync-service/internal/pkg/shopify"
)

// mapError translates query errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	if errors.Is(err, spanner.ErrRowNotFound) || errors.Is(err, shopify.ErrProductNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) || errors.Is(err, domain.ErrMissingProductID) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if errors.Is(err, queries.ErrJournalDisabled) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	var te *domain.TransportError
	if errors.As(err, &te) {
		return status.Error(codes.Unavailable, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}

// outcomeStatus converts an error outcome into a status with the outcome's
// caller-facing message. Success yields nil.
func outcomeStatus(resp actions.Response) error {
	switch resp.Cause {
	case domain.CauseNone:
		return nil
	case domain.CauseValidation:
		return status.Error(codes.InvalidArgument, resp.Body.Message)
	case domain.CauseUserError:
		return status.Error(codes.FailedPrecondition, resp.Body.Message)
	case domain.CauseTransport:
		return status.Error(codes.Unavailable, resp.Body.Message)
	case domain.CauseCancelled:
		return status.Error(codes.Canceled, resp.Body.Message)
	default:
		return status.Error(codes.Internal, resp.Body.Message)
	}
}
