// Package actions is the action surface exposed to transports: one entry
// point that routes a submitted form to the matching usecase.
package actions

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/delete_product"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/update_product"
)

// MsgInvalidAction is the message for any unknown action value.
const MsgInvalidAction = "Invalid action"

// FieldAction is the form field naming the action.
const FieldAction = "_action"

// Response is the dispatcher's reply: the caller-facing body plus the
// internal classification transports use to choose a status code.
type Response struct {
	Body  dto.ActionResponse
	Cause domain.FailureCause
	RunID string
}

// Dispatcher routes actions to usecases.
type Dispatcher struct {
	Update *update_product.Interactor
	Delete *delete_product.Interactor
	Create *create_product.Interactor
	Logger *zap.Logger
}

func NewDispatcher(update *update_product.Interactor, del *delete_product.Interactor, create *create_product.Interactor, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{Update: update, Delete: del, Create: create, Logger: logger}
}

// Dispatch never returns an error; every failure is a Response with status "error".
func (d *Dispatcher) Dispatch(ctx context.Context, form dto.ActionForm) Response {
	switch strings.TrimSpace(form.Action) {
	case dto.ActionUpdateProduct:
		req, err := dto.ParseUpdateProduct(form)
		if err != nil {
			return fromOutcome(shared.ValidationOutcome(err), "", "")
		}
		res := d.Update.Execute(ctx, update_product.Request{
			ProductID:         req.ProductID,
			Title:             req.Title,
			Description:       req.Description,
			Price:             req.Price,
			Vendor:            req.Vendor,
			NewImages:         req.NewImages,
			RemainingImageIDs: req.RemainingImageIDs,
		})
		return fromOutcome(res.Outcome, res.RunID, "")

	case dto.ActionDeleteProduct:
		req, err := dto.ParseDeleteProduct(form)
		if err != nil {
			return fromOutcome(shared.ValidationOutcome(err), "", "")
		}
		res := d.Delete.Execute(ctx, delete_product.Request{ProductID: req.ProductID})
		return fromOutcome(res.Outcome, res.RunID, "")

	case dto.ActionCreateProduct:
		req, err := dto.ParseCreateProduct(form)
		if err != nil {
			return fromOutcome(shared.ValidationOutcome(err), "", "")
		}
		res := d.Create.Execute(ctx, create_product.Request{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Vendor:      req.Vendor,
			Image:       req.Image,
		})
		return fromOutcome(res.Outcome, res.RunID, res.ProductID)
	}

	d.Logger.Warn("invalid action", zap.String("action", form.Action))
	err := domain.NewValidationError(FieldAction, MsgInvalidAction, domain.ErrInvalidAction)
	return fromOutcome(shared.ValidationOutcome(err), "", "")
}

func fromOutcome(o domain.Outcome, runID, productID string) Response {
	return Response{
		Body: dto.ActionResponse{
			Status:    string(o.Status),
			Message:   o.Message,
			ProductID: productID,
		},
		Cause: o.Cause,
		RunID: runID,
	}
}

// HTTPStatus maps a response to a status code: 400 for problems the caller
// can fix, 500 for catalog or partial failures.
func (r Response) HTTPStatus() int {
	switch r.Cause {
	case domain.CauseNone:
		return http.StatusOK
	case domain.CauseValidation, domain.CauseUserError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
