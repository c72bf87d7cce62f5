package domain

import "time"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the domain.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ProductReconciledEvent is raised when every step of an update run succeeded.
type ProductReconciledEvent struct {
	ProductID     string
	RunID         string
	ImagesDeleted int
	ImagesCreated int
	ReconciledAt  time.Time
}

func (e *ProductReconciledEvent) EventType() string {
	return "product.reconciled"
}

func (e *ProductReconciledEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductReconciledEvent) OccurredAt() time.Time {
	return e.ReconciledAt
}

// ProductReconcileFailedEvent is raised when a run of any action ended in an
// error outcome. Succeeded steps are not undone, so FailedSteps may be smaller
// than the number of steps attempted.
type ProductReconcileFailedEvent struct {
	ProductID   string
	RunID       string
	Action      string
	Message     string
	Cause       FailureCause
	FailedSteps int
	FailedAt    time.Time
}

func (e *ProductReconcileFailedEvent) EventType() string {
	return "product.reconcile_failed"
}

func (e *ProductReconcileFailedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductReconcileFailedEvent) OccurredAt() time.Time {
	return e.FailedAt
}

// ProductDeletedEvent is raised when the remote catalog confirmed a deletion.
type ProductDeletedEvent struct {
	ProductID string
	RunID     string
	DeletedAt time.Time
}

func (e *ProductDeletedEvent) EventType() string {
	return "product.deleted"
}

func (e *ProductDeletedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}

// ProductCreatedEvent is raised when the remote catalog created a product.
type ProductCreatedEvent struct {
	ProductID string
	RunID     string
	Title     string
	Price     Money
	CreatedAt time.Time
}

func (e *ProductCreatedEvent) EventType() string {
	return "product.created"
}

func (e *ProductCreatedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}
