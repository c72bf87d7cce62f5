package m_run

// Field constants for the reconciliation_runs table.
const (
	TableName = "reconciliation_runs"

	ColRunID       = "run_id"
	ColProductID   = "product_id"
	ColAction      = "action"
	ColState       = "state"
	ColStatus      = "status"
	ColMessage     = "message"
	ColCause       = "cause"
	ColSteps       = "steps"
	ColStartedAt   = "started_at"
	ColCompletedAt = "completed_at"
)

// Columns lists every column in read order.
var Columns = []string{
	ColRunID, ColProductID, ColAction, ColState, ColStatus,
	ColMessage, ColCause, ColSteps, ColStartedAt, ColCompletedAt,
}
