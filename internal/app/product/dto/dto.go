package dto

// ProductSummaryDTO is a compact DTO for the remote product listing.
// Nothing in it is persisted locally.
type ProductSummaryDTO struct {
	ProductID   string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Vendor      string `json:"vendor"`
	// Price is the minimum variant price as a decimal string.
	Price        string  `json:"price"`
	CurrencyCode string  `json:"currencyCode"`
	ImageURL     *string `json:"imageUrl"`
	ImageAltText *string `json:"imageAltText"`
}

// RunDTO contains a journaled reconciliation run as returned by read queries.
// Timestamps are RFC3339 strings.
type RunDTO struct {
	RunID       string    `json:"runId"`
	ProductID   string    `json:"productId"`
	Action      string    `json:"action"`
	State       string    `json:"state"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Cause       string    `json:"cause,omitempty"`
	Steps       []StepDTO `json:"steps"`
	StartedAt   string    `json:"startedAt"`
	CompletedAt string    `json:"completedAt"`
}

// StepDTO is one step of a journaled run.
type StepDTO struct {
	Kind         string `json:"kind"`
	Target       string `json:"target,omitempty"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Cause        string `json:"cause,omitempty"`
}

// ActionResponse is the caller-facing reply to every action.
type ActionResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	ProductID string `json:"productId,omitempty"`
}
