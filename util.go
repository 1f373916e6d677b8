package reactive

import "github.com/latchwire/reactive/internal/graph"

// Upstream is implemented by every typed node wrapper (Source, Computed,
// Bindable, Adapter). Operators accept it so they can be composed over
// any node kind, the same way internal/graph's Upstream interface
// generalizes over node kinds at the untyped layer.
type Upstream interface {
	rawUpstream() graph.Upstream
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

func equalComparable[T comparable](a, b any) bool {
	return as[T](a) == as[T](b)
}

func wrapEqual[T any](eq func(a, b T) bool) graph.EqualFunc {
	return func(a, b any) bool { return eq(as[T](a), as[T](b)) }
}
