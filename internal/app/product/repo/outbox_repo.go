package repo

import (
	"cloud.google.com/go/spanner"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/models/m_outbox"
)

// OutboxRepo builds outbox inserts that commit together with a run row.
type OutboxRepo struct{}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

func (r *OutboxRepo) InsertMut(e *contracts.OutboxEvent) *spanner.Mutation {
	if e == nil {
		return nil
	}

	values := m_outbox.BuildInsertMap(
		e.EventID,
		e.EventType,
		e.AggregateID,
		e.RunID,
		e.PayloadJSON,
		e.CreatedAtUTC.UTC(),
	)
	return m_outbox.InsertMutation(values)
}
