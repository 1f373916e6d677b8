package reactive

import "github.com/latchwire/reactive/internal/graph"

// Source is a writable leaf node (spec C2).
type Source[T any] struct {
	node *graph.Source
}

// NewSource constructs a writable leaf holding initial, using == as the
// change-detection equality.
func NewSource[T comparable](initial T) *Source[T] {
	return &Source[T]{node: graph.NewSource(initial, equalComparable[T])}
}

// NewSourceWithEqual is NewSource for a T whose meaningful equality isn't
// ==, e.g. a slice or a struct compared by a subset of its fields.
func NewSourceWithEqual[T any](initial T, equal func(a, b T) bool) *Source[T] {
	return &Source[T]{node: graph.NewSource(initial, wrapEqual(equal))}
}

// Read returns the current value.
func (s *Source[T]) Read() T { return as[T](s.node.Read()) }

// Write replaces the value, triggering the invalidation wave if it
// differs by equality from the current one.
func (s *Source[T]) Write(v T) { s.node.Write(v) }

// Update applies fn to the current value; fn may be re-applied if a
// concurrent writer wins the race first.
func (s *Source[T]) Update(fn func(T) T) {
	s.node.Update(func(v any) any { return fn(as[T](v)) })
}

// Subscribe delivers the current value synchronously, then fn on every
// subsequent change, until the returned func is called.
func (s *Source[T]) Subscribe(fn func(Result[T])) func() {
	return s.node.Subscribe(func(r graph.Result) { fn(resultFrom[T](r)) })
}

// Version is the node's local monotonic version counter.
func (s *Source[T]) Version() int64 { return s.node.Version() }

// Close detaches every observer and target; further writes are no-ops.
func (s *Source[T]) Close() { s.node.Close() }

func (s *Source[T]) rawUpstream() graph.Upstream { return s.node }
