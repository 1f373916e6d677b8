package reactive

import "github.com/latchwire/reactive/internal/graph"

// Map derives a value by transforming source's value (spec C7).
func Map[A, T comparable](source Upstream, transform func(A) (T, error)) *Computed[T] {
	return newComputed[T]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		return transform(as[A](vals[0]))
	}, equalComparable[T])
}

// Filter holds the last value of source that satisfied predicate,
// updating only when a new passing value arrives. Read/Subscribe fail
// with ErrInvalidState until the first passing value is seen.
func Filter[A comparable](source Upstream, predicate func(A) bool) *Computed[A] {
	var last A
	hasLast := false
	return newComputed[A]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		v := as[A](vals[0])
		if predicate(v) {
			last = v
			hasLast = true
			return v, nil
		}
		if hasLast {
			return last, nil
		}
		return nil, ErrInvalidState
	}, equalComparable[A])
}

// Combine derives a value from an arbitrary number of same-typed
// upstreams — the combine-N operator for the common case where every
// upstream shares a type. For mixed types up to four upstreams, use
// NewComputed2/3/4.
func Combine[A, T comparable](ups []Upstream, combine func([]A) (T, error)) *Computed[T] {
	raw := make([]graph.Upstream, len(ups))
	for i, u := range ups {
		raw[i] = u.rawUpstream()
	}
	return newComputed[T](raw, func(vals []any) (any, error) {
		typed := make([]A, len(vals))
		for i, v := range vals {
			typed[i] = as[A](v)
		}
		return combine(typed)
	}, equalComparable[T])
}

// Switch takes an outer upstream whose value selects an inner node (via
// selectInner) and derives a value that always reflects whichever inner
// node is currently selected, re-registering with the new inner each time
// outer's selection changes.
func Switch[T comparable](outer Upstream, selectInner func(outerValue any) Upstream) *Computed[T] {
	return &Computed[T]{node: graph.NewFlattenSwitch(outer.rawUpstream(), selectInner, equalComparable[T])}
}

// Scan folds source's successive values into an accumulator, seeded with
// initial. The fold runs under the node's own single-flight recompute
// guard, so concurrent pulls never interleave two accumulation steps
// (spec §9 Open Question: scan is strictly serialized, not merely
// best-effort).
func Scan[A, T comparable](source Upstream, initial T, accumulate func(acc T, v A) (T, error)) *Computed[T] {
	acc := initial
	return newComputed[T]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		next, err := accumulate(acc, as[A](vals[0]))
		if err != nil {
			return nil, err
		}
		acc = next
		return acc, nil
	}, equalComparable[T])
}

// Pair is the value Pairwise emits.
type Pair[A any] struct {
	Prev, Current A
}

// Pairwise emits the current and immediately preceding value of source as
// a Pair. The first emission pairs the current value with A's zero value.
func Pairwise[A comparable](source Upstream) *Computed[Pair[A]] {
	var prev A
	return newComputed[Pair[A]]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		cur := as[A](vals[0])
		p := Pair[A]{Prev: prev, Current: cur}
		prev = cur
		return p, nil
	}, func(a, b any) bool {
		pa, pb := a.(Pair[A]), b.(Pair[A])
		return pa == pb
	})
}

// DistinctBy re-emits source's value only when key's result changes, even
// if the value itself differs in ways key ignores.
func DistinctBy[A any, K comparable](source Upstream, key func(A) K) *Computed[A] {
	return newComputed[A]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		v := as[A](vals[0])
		// Evaluated here so a panicking key selector is recovered as a
		// ComputeFailure; the equality check below runs outside that
		// recovery.
		_ = key(v)
		return v, nil
	}, func(a, b any) bool {
		return key(as[A](a)) == key(as[A](b))
	})
}

// WithLatestFrom derives a value from source's emissions, sampling
// other's current value at the moment source changes. other is read
// directly (not subscribed), so a change to other alone never triggers a
// new emission — only source firing does.
func WithLatestFrom[A, B, T comparable](source Upstream, other Upstream, combine func(A, B) (T, error)) *Computed[T] {
	otherRaw := other.rawUpstream()
	return newComputed[T]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		a := as[A](vals[0])
		b, err := otherRaw.ReadResult()
		if err != nil {
			return nil, &UpstreamFailure{Err: err}
		}
		return combine(a, as[B](b))
	}, equalComparable[T])
}

// BidirectionalMap is a writable view over a *Source: reads go through
// forward, writes go through reverse before landing on the underlying
// source.
type BidirectionalMap[A, T any] struct {
	source   *Source[A]
	reverse  func(T) (A, error)
	computed *Computed[T]
}

// BiMap constructs a BidirectionalMap.
func BiMap[A, T comparable](source *Source[A], forward func(A) (T, error), reverse func(T) (A, error)) *BidirectionalMap[A, T] {
	c := newComputed[T]([]graph.Upstream{source.rawUpstream()}, func(vals []any) (any, error) {
		return forward(as[A](vals[0]))
	}, equalComparable[T])
	return &BidirectionalMap[A, T]{source: source, reverse: reverse, computed: c}
}

func (m *BidirectionalMap[A, T]) Read() (T, error) { return m.computed.Read() }

// Write runs v through reverse and writes the result to the underlying
// source. A reverse error is returned as a ComputeFailure and nothing is
// written.
func (m *BidirectionalMap[A, T]) Write(v T) error {
	a, err := m.reverse(v)
	if err != nil {
		return &ComputeFailure{Err: err}
	}
	m.source.Write(a)
	return nil
}

func (m *BidirectionalMap[A, T]) Subscribe(fn func(Result[T])) func() { return m.computed.Subscribe(fn) }

func (m *BidirectionalMap[A, T]) Close() { m.computed.Close() }
