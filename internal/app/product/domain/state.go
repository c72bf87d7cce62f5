package domain

import "fmt"

// ReconcileState is the lifecycle position of one reconciliation run.
//
//	idle -> validating -> updating -> reconciling_images -> done
//	                 \          \                  \
//	                  +----------+------------------+--> failed
//
// A run that needs no image operations moves from updating to done directly.
type ReconcileState string

const (
	StateIdle              ReconcileState = "idle"
	StateValidating        ReconcileState = "validating"
	StateUpdating          ReconcileState = "updating"
	StateReconcilingImages ReconcileState = "reconciling_images"
	StateDone              ReconcileState = "done"
	StateFailed            ReconcileState = "failed"
)

var allowedTransitions = map[ReconcileState][]ReconcileState{
	StateIdle:              {StateValidating},
	StateValidating:        {StateUpdating, StateFailed},
	StateUpdating:          {StateReconcilingImages, StateDone, StateFailed},
	StateReconcilingImages: {StateDone, StateFailed},
}

// Advance returns the next state, or an error when the transition is not part
// of the lifecycle. Terminal states cannot be left.
func (s ReconcileState) Advance(to ReconcileState) (ReconcileState, error) {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return to, nil
		}
	}
	return s, fmt.Errorf("reconcile state: illegal transition %s -> %s", s, to)
}

// Terminal reports whether the run has finished.
func (s ReconcileState) Terminal() bool {
	return s == StateDone || s == StateFailed
}
