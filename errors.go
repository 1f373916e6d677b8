package reactive

import "github.com/latchwire/reactive/internal/graph"

var (
	// ErrInvalidState is returned for an operation on an unbound bindable
	// that requires a target, or on a closed node that demands aliveness.
	ErrInvalidState = graph.ErrInvalidState

	// ErrCycleDetected is returned by Bindable.BindTo and WouldCreateCycle.
	ErrCycleDetected = graph.ErrCycleDetected
)

// ComputeFailure wraps a panic or error raised by a user-supplied compute,
// combine, accumulator, key selector, or forward/reverse transform. A
// reverse-transform failure is returned from BidirectionalMap.Write only;
// it is not stored on the node or delivered to observers.
type ComputeFailure = graph.ComputeFailure

// UpstreamFailure wraps a failure observed from an upstream's notification
// stream; it never alters the cached value of the node reporting it.
type UpstreamFailure = graph.UpstreamFailure
