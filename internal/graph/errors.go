package graph

import "errors"

// Error taxonomy. Each is a sentinel wrapped with errors.New/%w so callers
// can errors.Is/errors.As against the category while still getting a
// message carrying the offending detail.
var (
	// ErrInvalidState covers operations on an unbound bindable that
	// requires a target, or on a closed node demanding aliveness.
	ErrInvalidState = errors.New("graph: invalid state")

	// ErrCycleDetected is returned by bind and by the static cycle query.
	ErrCycleDetected = errors.New("graph: cycle detected")
)

// ComputeFailure wraps a panic or error raised by a user-supplied compute,
// combine, accumulator, key selector, or forward/reverse transform. It is
// stored on the node and re-raised on synchronous reads until an upstream
// version change, and delivered to observers as Result.Failure.
type ComputeFailure struct {
	Err error
}

func (e *ComputeFailure) Error() string { return "graph: compute failed: " + e.Err.Error() }
func (e *ComputeFailure) Unwrap() error { return e.Err }

// UpstreamFailure wraps a failure observed from an upstream's notification
// stream. It never alters the cached value of the node that reports it.
type UpstreamFailure struct {
	Err error
}

func (e *UpstreamFailure) Error() string { return "graph: upstream failed: " + e.Err.Error() }
func (e *UpstreamFailure) Unwrap() error { return e.Err }

// asFailure normalizes a recovered panic value into an error.
func asFailure(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errors.New("graph: panic in user callback")
}
