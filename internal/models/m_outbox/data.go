package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares an outbox row for the run that raised the event.
// processed_at stays NULL until a relay publishes the event.
func BuildInsertMap(eventID, eventType, aggregateID, runID, payload string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEventID:     eventID,
		ColEventType:   eventType,
		ColAggregateID: aggregateID,
		ColRunID:       runID,
		ColPayload:     payload,
		ColStatus:      StatusPending,
		ColCreatedAt:   createdAt,
		ColProcessedAt: nil,
	}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertMap(TableName, values)
}
