package shared

import (
	"context"

	"github.com/moby/locker"
)

// LockProduct takes the per-product lock, giving up when ctx is done first.
// The returned func releases the lock. A lock obtained after the caller gave
// up is released as soon as it is acquired.
func LockProduct(ctx context.Context, locks *locker.Locker, productID string) (func(), error) {
	acquired := make(chan struct{})
	go func() {
		locks.Lock(productID)
		close(acquired)
	}()

	select {
	case <-acquired:
		return func() { _ = locks.Unlock(productID) }, nil
	case <-ctx.Done():
		go func() {
			<-acquired
			_ = locks.Unlock(productID)
		}()
		return nil, ctx.Err()
	}
}
