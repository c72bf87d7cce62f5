package list_runs

import (
	"context"
	"fmt"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

type Handler struct {
	journal contracts.Journal
}

func NewHandler(j contracts.Journal) *Handler {
	return &Handler{journal: j}
}

// Execute clamps limit to [1, MaxLimit]; zero means DefaultLimit.
func (h *Handler) Execute(ctx context.Context, productID string, limit, offset int) ([]*dto.RunDTO, error) {
	if productID == "" {
		return nil, fmt.Errorf("list runs: %w", domain.ErrMissingProductID)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return h.journal.ListRuns(ctx, productID, limit, offset)
}
