package poll

import "context"

type State string

const (
	Idle       State = "idle"
	Polling    State = "polling"
	Suspended  State = "suspended"
	Terminated State = "terminated"
)

// TickFunc fetches and reconciles the authoritative state of one tracked resource.
// The context is cancelled when the poller terminates; implementations must check it
// before applying any state mutation so late responses are safely ignorable.
type TickFunc func(ctx context.Context, resourceID string) error

// The Poller interface is a suspend/resume-capable scheduled task. Within one tick,
// per-resource fetches run concurrently and independently; one failure never blocks
// the others.
type Poller interface {
	// Track adds a resource to the polling set. Tracking an already-tracked
	// resource is a no-op.
	Track(resourceID string)

	// Untrack removes a resource from the polling set.
	Untrack(resourceID string)

	// Start arms the timer. Only valid from the idle state.
	Start()

	// Suspend pauses the timer outright; no ticks fire while suspended.
	Suspend()

	// Resume rearms the timer and triggers an immediate out-of-band tick.
	Resume()

	// Refresh triggers an immediate tick without touching the cadence.
	Refresh()

	// Stop terminates the poller. Idempotent; the timer never fires again.
	Stop()

	State() State
}
