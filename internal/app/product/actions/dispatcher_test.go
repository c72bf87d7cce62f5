package actions

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/moby/locker"
	"github.com/stretchr/testify/assert"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/fakecatalog"
	"github.com/murkotick/product-sync-service/internal/app/product/pipeline"
	"github.com/murkotick/product-sync-service/internal/app/product/repo"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/delete_product"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-sync-service/internal/pkg/clock"
	commitplan "github.com/murkotick/product-sync-service/internal/pkg/committer"
)

func newDispatcher(catalog *fakecatalog.Catalog) *Dispatcher {
	rec := &shared.Recorder{RunRepo: repo.NewRunRepo(), OutboxRepo: repo.NewOutboxRepo(), Committer: commitplan.Nop{}}
	clk := clock.NewFake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	locks := locker.New()
	return NewDispatcher(
		update_product.NewInteractor(catalog, pipeline.New(catalog), locks, rec, clk, nil),
		delete_product.NewInteractor(catalog, locks, rec, clk, nil),
		create_product.NewInteractor(catalog, rec, clk, nil),
		nil,
	)
}

func TestDispatch_InvalidAction(t *testing.T) {
	catalog := fakecatalog.New()

	for _, action := range []string{"", "archiveProduct", "UPDATEPRODUCT"} {
		res := newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{Action: action, ProductID: "p1"})

		assert.Equal(t, dto.ActionResponse{Status: "error", Message: "Invalid action"}, res.Body)
		assert.Equal(t, domain.CauseValidation, res.Cause)
		assert.Equal(t, http.StatusBadRequest, res.HTTPStatus())
	}
	assert.Empty(t, catalog.Calls())
}

func TestDispatch_UpdateProduct(t *testing.T) {
	catalog := fakecatalog.New()
	catalog.Images["p1"] = []domain.ImageRef{{ID: "A"}, {ID: "B"}}

	res := newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{
		Action:            "updateProduct",
		ProductID:         "p1",
		Title:             "Snowboard",
		Price:             "12.00",
		NewImages:         `["X"]`,
		RemainingImageIDs: `["B"]`,
	})

	assert.Equal(t, dto.ActionResponse{Status: "success"}, res.Body)
	assert.Equal(t, http.StatusOK, res.HTTPStatus())
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{"A"}, catalog.CallsTo("DeleteImage"))
	assert.Equal(t, []string{"X"}, catalog.CallsTo("CreateImage"))
}

func TestDispatch_UpdateProductMalformedImages(t *testing.T) {
	catalog := fakecatalog.New()

	res := newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{
		Action:    "updateProduct",
		ProductID: "p1",
		Title:     "Snowboard",
		Price:     "12",
		NewImages: `not json`,
	})

	assert.Equal(t, "error", res.Body.Status)
	assert.Equal(t, dto.MsgMalformedImages, res.Body.Message)
	assert.Equal(t, http.StatusBadRequest, res.HTTPStatus())
	assert.Empty(t, catalog.Calls())
}

func TestDispatch_UpdateProductTitleTaken(t *testing.T) {
	catalog := fakecatalog.New().Fail("UpdateProduct", fakecatalog.Failure{UserError: "Title taken"})

	res := newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{
		Action: "updateProduct", ProductID: "p1", Title: "Snowboard", Price: "12",
	})

	assert.Equal(t, dto.ActionResponse{Status: "error", Message: "Title taken"}, res.Body)
	assert.Equal(t, http.StatusBadRequest, res.HTTPStatus())
}

func TestDispatch_DeleteProduct(t *testing.T) {
	catalog := fakecatalog.New()
	res := newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{Action: "deleteProduct", ProductID: "p1"})
	assert.Equal(t, dto.ActionResponse{Status: "success"}, res.Body)

	catalog = fakecatalog.New().Fail("DeleteProduct", fakecatalog.Failure{Transport: true})
	res = newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{Action: "deleteProduct", ProductID: "p1"})
	assert.Equal(t, "An error occurred while deleting the product", res.Body.Message)
	assert.Equal(t, http.StatusInternalServerError, res.HTTPStatus())
}

func TestDispatch_CreateProduct(t *testing.T) {
	catalog := fakecatalog.New()

	res := newDispatcher(catalog).Dispatch(context.Background(), dto.ActionForm{
		Action: "createProduct", Title: "Snowboard", Price: "5", Image: `"data:image/png;base64,AA"`,
	})

	assert.Equal(t, "success", res.Body.Status)
	assert.NotEmpty(t, res.Body.ProductID)
}

func TestResponse_HTTPStatus(t *testing.T) {
	cases := map[domain.FailureCause]int{
		domain.CauseNone:       http.StatusOK,
		domain.CauseValidation: http.StatusBadRequest,
		domain.CauseUserError:  http.StatusBadRequest,
		domain.CauseTransport:  http.StatusInternalServerError,
		domain.CausePartial:    http.StatusInternalServerError,
		domain.CauseCancelled:  http.StatusInternalServerError,
	}
	for cause, want := range cases {
		assert.Equal(t, want, Response{Cause: cause}.HTTPStatus(), string(cause))
	}
}
