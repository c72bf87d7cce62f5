package shared

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
//
// The domain layer avoids serialization concerns; this adapter extracts
// primitives (Money as a decimal string) to keep payloads useful.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	switch e := ev.(type) {
	case *domain.ProductReconciledEvent:
		payload := map[string]interface{}{
			"product_id":     e.ProductID,
			"run_id":         e.RunID,
			"images_deleted": e.ImagesDeleted,
			"images_created": e.ImagesCreated,
			"occurred_at":    e.OccurredAt(),
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductReconcileFailedEvent:
		payload := map[string]interface{}{
			"product_id":   e.ProductID,
			"run_id":       e.RunID,
			"action":       e.Action,
			"message":      e.Message,
			"cause":        string(e.Cause),
			"failed_steps": e.FailedSteps,
			"occurred_at":  e.OccurredAt(),
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductDeletedEvent:
		payload := map[string]interface{}{
			"product_id":  e.ProductID,
			"run_id":      e.RunID,
			"occurred_at": e.OccurredAt(),
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductCreatedEvent:
		payload := map[string]interface{}{
			"product_id":  e.ProductID,
			"run_id":      e.RunID,
			"title":       e.Title,
			"price":       e.Price.String(),
			"occurred_at": e.OccurredAt(),
		}
		b, err := json.Marshal(payload)
		return string(b), err
	}

	// Fallback: try to marshal the event directly.
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
