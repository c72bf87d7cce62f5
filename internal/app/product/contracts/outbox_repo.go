package contracts

import (
	"time"

	"cloud.google.com/go/spanner"
)

// OutboxRepo is the write-side repository interface for the transactional outbox.
// It returns Spanner mutations; it does not apply them.
type OutboxRepo interface {
	InsertMut(e *OutboxEvent) *spanner.Mutation
}

// OutboxEvent is a domain event as written to the outbox, tied to the run
// that raised it. New events are always pending.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	RunID        string
	PayloadJSON  string
	CreatedAtUTC time.Time
}
