package get_run

import (
	"context"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

type Handler struct {
	journal contracts.Journal
}

func NewHandler(j contracts.Journal) *Handler {
	return &Handler{journal: j}
}

func (h *Handler) Execute(ctx context.Context, runID string) (*dto.RunDTO, error) {
	return h.journal.GetRun(ctx, runID)
}
