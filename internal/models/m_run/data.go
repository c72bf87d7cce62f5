package m_run

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds an insert for a run. Keys are the columns in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return spanner.InsertMap(TableName, values)
}

// BuildInsertMap prepares the canonical fields for insertion.
// message and cause are stored as NULL when empty; steps is a JSON array.
func BuildInsertMap(runID, productID, action, state, status string, message, cause *string,
	stepsJSON string, startedAt, completedAt time.Time) map[string]interface{} {

	m := map[string]interface{}{
		ColRunID:       runID,
		ColProductID:   productID,
		ColAction:      action,
		ColState:       state,
		ColStatus:      status,
		ColSteps:       stepsJSON,
		ColStartedAt:   startedAt,
		ColCompletedAt: completedAt,
	}

	if message != nil {
		m[ColMessage] = *message
	} else {
		m[ColMessage] = nil
	}

	if cause != nil {
		m[ColCause] = *cause
	} else {
		m[ColCause] = nil
	}

	return m
}
