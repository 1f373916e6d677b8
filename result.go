package reactive

import "github.com/latchwire/reactive/internal/graph"

// Result is what a Subscribe callback receives: either a successful value
// or a failure. ok is unexported so the zero Result isn't mistaken for a
// successful zero-value delivery.
type Result[T any] struct {
	Value T
	Err   error
	ok    bool
}

func success[T any](v T) Result[T]    { return Result[T]{Value: v, ok: true} }
func failure[T any](err error) Result[T] { return Result[T]{Err: err} }

// IsFailure reports whether this delivery carries an error instead of a
// value.
func (r Result[T]) IsFailure() bool { return !r.ok }

func resultFrom[T any](r graph.Result) Result[T] {
	if r.Failure {
		return failure[T](r.Err)
	}
	return success(as[T](r.Value))
}
