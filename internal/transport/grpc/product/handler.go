package product

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/product-sync-service/internal/app/product/actions"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/get_run"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_runs"
)

// RunIDHeader carries the journal run id of a Dispatch call, including failed ones.
const RunIDHeader = "x-run-id"

// Queries groups read handlers.
type Queries struct {
	Products *list_products.Handler
	Runs     *list_runs.Handler
	Run      *get_run.Handler
}

// Handler is a thin gRPC transport adapter.
// It decodes Struct requests, delegates to the action dispatcher or a query
// handler, and encodes the reply.
type Handler struct {
	actions *actions.Dispatcher
	queries Queries
}

var _ ProductSyncServer = (*Handler)(nil)

func NewHandler(d *actions.Dispatcher, q Queries) *Handler {
	return &Handler{actions: d, queries: q}
}

// Dispatch runs one action. Error outcomes become gRPC statuses carrying the
// outcome message; the reply body is only sent on success.
func (h *Handler) Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	form, err := structToForm(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp := h.actions.Dispatch(ctx, form)
	if resp.RunID != "" {
		_ = grpc.SetHeader(ctx, metadata.Pairs(RunIDHeader, resp.RunID))
	}
	if err := outcomeStatus(resp); err != nil {
		return nil, err
	}
	return toStruct(resp.Body)
}

func (h *Handler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	first, err := intField(req, "first")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items, err := h.queries.Products.Execute(ctx, first)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]interface{}{"products": items})
}

func (h *Handler) ListRuns(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "productId"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	limit, err := intField(req, "pageSize")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if limit <= 0 {
		limit = list_runs.DefaultLimit
	}
	if limit > list_runs.MaxLimit {
		limit = list_runs.MaxLimit
	}

	offset, err := decodePageToken(stringField(req, "pageToken"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid pageToken")
	}

	runs, err := h.queries.Runs.Execute(ctx, stringField(req, "productId"), limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	next := ""
	if len(runs) == limit {
		next = encodePageToken(offset + len(runs))
	}
	return toStruct(map[string]interface{}{"runs": runs, "nextPageToken": next})
}

func (h *Handler) GetRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireFields(req, "runId"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	run, err := h.queries.Run.Execute(ctx, stringField(req, "runId"))
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]interface{}{"run": run})
}
