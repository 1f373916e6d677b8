package reactive

import "github.com/latchwire/reactive/internal/graph"

// Computed is the derived node (spec C3): a static list of upstreams plus
// a pure function of their values, cached and recomputed push-pull style.
type Computed[T any] struct {
	node *graph.Computed
}

func newComputed[T any](ups []graph.Upstream, compute func([]any) (any, error), equal graph.EqualFunc) *Computed[T] {
	return &Computed[T]{node: graph.NewComputed(ups, compute, equal)}
}

// Read pulls the current value, recomputing as needed.
func (c *Computed[T]) Read() (T, error) {
	v, err := c.node.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v), nil
}

// Subscribe delivers the current value (or failure) synchronously, then
// fn on every subsequent change, until the returned func is called.
func (c *Computed[T]) Subscribe(fn func(Result[T])) func() {
	return c.node.Subscribe(func(r graph.Result) { fn(resultFrom[T](r)) })
}

// Version is the node's local monotonic version counter; it only advances
// when the cached value actually changes by equality.
func (c *Computed[T]) Version() int64 { return c.node.Version() }

// Close detaches every observer and target and deregisters from every
// upstream.
func (c *Computed[T]) Close() { c.node.Close() }

func (c *Computed[T]) rawUpstream() graph.Upstream { return c.node }

// NewComputed1 derives a value from a single upstream.
func NewComputed1[A, T comparable](a Upstream, compute func(A) (T, error)) *Computed[T] {
	return newComputed[T]([]graph.Upstream{a.rawUpstream()}, func(vals []any) (any, error) {
		return compute(as[A](vals[0]))
	}, equalComparable[T])
}

// NewComputed2 derives a value from two upstreams.
func NewComputed2[A, B, T comparable](a, b Upstream, compute func(A, B) (T, error)) *Computed[T] {
	return newComputed[T]([]graph.Upstream{a.rawUpstream(), b.rawUpstream()}, func(vals []any) (any, error) {
		return compute(as[A](vals[0]), as[B](vals[1]))
	}, equalComparable[T])
}

// NewComputed3 derives a value from three upstreams.
func NewComputed3[A, B, C, T comparable](a, b, c Upstream, compute func(A, B, C) (T, error)) *Computed[T] {
	return newComputed[T]([]graph.Upstream{a.rawUpstream(), b.rawUpstream(), c.rawUpstream()}, func(vals []any) (any, error) {
		return compute(as[A](vals[0]), as[B](vals[1]), as[C](vals[2]))
	}, equalComparable[T])
}

// NewComputed4 derives a value from four upstreams.
func NewComputed4[A, B, C, D, T comparable](a, b, c, d Upstream, compute func(A, B, C, D) (T, error)) *Computed[T] {
	return newComputed[T]([]graph.Upstream{a.rawUpstream(), b.rawUpstream(), c.rawUpstream(), d.rawUpstream()}, func(vals []any) (any, error) {
		return compute(as[A](vals[0]), as[B](vals[1]), as[C](vals[2]), as[D](vals[3]))
	}, equalComparable[T])
}
