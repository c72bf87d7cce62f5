package list_products

import (
	"context"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

const (
	DefaultFirst = 10
	MaxFirst     = 50
)

// Handler lists products straight from the remote catalog. Results are not
// cached; the catalog is the system of record.
type Handler struct {
	reader contracts.CatalogReader
}

func NewHandler(r contracts.CatalogReader) *Handler {
	return &Handler{reader: r}
}

func (h *Handler) Execute(ctx context.Context, first int) ([]*dto.ProductSummaryDTO, error) {
	if first <= 0 {
		first = DefaultFirst
	}
	if first > MaxFirst {
		first = MaxFirst
	}
	return h.reader.ListProducts(ctx, first)
}
