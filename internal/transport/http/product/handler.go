// Package product exposes the action surface and read queries over HTTP.
package product

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/murkotick/product-sync-service/internal/app/product/actions"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/queries"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/get_run"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_runs"
	"github.com/murkotick/product-sync-service/internal/pkg/logger"
	"github.com/murkotick/product-sync-service/internal/pkg/shopify"
)

// RunIDHeader carries the journal run id of an action, including failed ones.
const RunIDHeader = "X-Run-ID"

type Queries struct {
	Products *list_products.Handler
	Runs     *list_runs.Handler
	Run      *get_run.Handler
}

type Handler struct {
	actions *actions.Dispatcher
	queries Queries
	timeout time.Duration
	logger  *zap.Logger
}

// NewHandler builds the HTTP adapter. A zero timeout leaves request contexts untouched.
func NewHandler(d *actions.Dispatcher, q Queries, timeout time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{actions: d, queries: q, timeout: timeout, logger: logger}
}

func (h *Handler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// Action accepts a form post (urlencoded or multipart) or a JSON body and
// replies with {status, message}.
func (h *Handler) Action(c *gin.Context) {
	form, err := bindForm(c)
	if err != nil {
		h.logger.Warn("bind action", zap.String("request_id", logger.RequestID(c)), zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ActionResponse{Status: string(domain.StatusError), Message: err.Error()})
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	resp := h.actions.Dispatch(ctx, form)
	if resp.RunID != "" {
		c.Header(RunIDHeader, resp.RunID)
	}
	c.JSON(resp.HTTPStatus(), resp.Body)
}

func bindForm(c *gin.Context) (dto.ActionForm, error) {
	if c.ContentType() == gin.MIMEJSON {
		var values map[string]interface{}
		if err := c.ShouldBindJSON(&values); err != nil {
			return dto.ActionForm{}, errors.New("request body is not a JSON object")
		}
		return dto.FormFromValues(values)
	}

	var form dto.ActionForm
	if err := c.ShouldBind(&form); err != nil {
		return dto.ActionForm{}, errors.New("request body is not a valid form")
	}
	return form, nil
}

func (h *Handler) ListProducts(c *gin.Context) {
	first, err := strconv.Atoi(c.DefaultQuery("first", strconv.Itoa(list_products.DefaultFirst)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first must be a number"})
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	items, err := h.queries.Products.Execute(ctx, first)
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (h *Handler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(list_runs.DefaultLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a number"})
		return
	}

	runs, err := h.queries.Runs.Execute(c.Request.Context(), c.Query("productId"), limit, offset)
	if err != nil {
		h.fail(c, "list runs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "limit": limit, "offset": offset})
}

func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.queries.Run.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get run", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(op, zap.String("request_id", logger.RequestID(c)), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var ve *domain.ValidationError
	var te *domain.TransportError
	switch {
	case errors.As(err, &ve), errors.Is(err, domain.ErrMissingProductID):
		return http.StatusBadRequest
	case errors.Is(err, spanner.ErrRowNotFound), errors.Is(err, shopify.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, queries.ErrJournalDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &te):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
