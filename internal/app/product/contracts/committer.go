package contracts

import (
	"context"

	commitplan "github.com/murkotick/product-sync-service/internal/pkg/committer"
)

// Committer applies a collection of journal mutations atomically. It keeps
// usecases independent of the storage driver; a no-op implementation is used
// when the journal is disabled.
type Committer interface {
	// Apply atomically applies the provided mutation plan.
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
