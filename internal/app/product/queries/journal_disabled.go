package queries

import (
	"context"
	"errors"

	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

// ErrJournalDisabled is returned by journal reads when no database is configured.
var ErrJournalDisabled = errors.New("reconciliation journal is disabled")

// DisabledJournal satisfies contracts.Journal when SPANNER_DATABASE is unset.
type DisabledJournal struct{}

func (DisabledJournal) GetRun(context.Context, string) (*dto.RunDTO, error) {
	return nil, ErrJournalDisabled
}

func (DisabledJournal) ListRuns(context.Context, string, int, int) ([]*dto.RunDTO, error) {
	return nil, ErrJournalDisabled
}
