package graph

import "sync/atomic"

// bindMeta is the binding record spec §4.5 describes: "current upstream,
// an unsubscribe handle, and whether it owns (and should close) that
// upstream". We don't need a literal unsubscribe closure — tearing the
// binding down is just RemoveTarget on the recorded upstream — so the
// record only needs the two fields that change the bind protocol's
// behavior.
type bindMeta struct {
	upstream      Upstream
	takeOwnership bool
}

// Bindable is the runtime-rebindable proxy (spec C5). It forwards reads to
// whatever it is currently bound to and can be pointed at a different
// upstream later. Internally it's built on Computed with an identity
// compute function over a single, swappable upstream slot: rebinding is
// exactly flatten/switch's "outer changed to a new inner" operation,
// except triggered by an explicit call instead of an outer node's value.
type Bindable struct {
	*Computed
	meta atomic.Pointer[bindMeta]
}

// NewBindable constructs a proxy, optionally already bound to initial (nil
// leaves it unbound; Read then fails with ErrInvalidState).
func NewBindable(initial Upstream, takeOwnership bool, equal EqualFunc) *Bindable {
	b := &Bindable{}
	var ups []Upstream
	if initial != nil {
		ups = []Upstream{initial}
	}
	b.Computed = NewComputed(ups, identityCompute, equal)
	b.meta.Store(&bindMeta{upstream: initial, takeOwnership: takeOwnership})
	return b
}

func identityCompute(values []any) (any, error) {
	if len(values) == 0 {
		return nil, ErrInvalidState
	}
	return values[0], nil
}

// CurrentBinding reports the upstream this proxy currently forwards to, if
// any.
func (b *Bindable) CurrentBinding() (Upstream, bool) {
	m := b.meta.Load()
	if m == nil || m.upstream == nil {
		return nil, false
	}
	return m.upstream, true
}

func (b *Bindable) IsBound() bool {
	_, ok := b.CurrentBinding()
	return ok
}

// WouldCreateCycle walks the chain of "current upstream" bindings starting
// at candidate, following it only through further Bindables (any other
// node kind is a terminal leaf for this check — spec §4.5: "Cycle
// detection walks only through bindable proxies"). It reports whether
// binding self to candidate would close a loop.
func WouldCreateCycle(self *Bindable, candidate Upstream) bool {
	cur := candidate
	var visited map[*Bindable]bool
	for {
		next, ok := cur.(*Bindable)
		if !ok {
			return false
		}
		if next == self {
			return true
		}
		if visited == nil {
			visited = make(map[*Bindable]bool)
		}
		if visited[next] {
			// A cycle exists elsewhere in the chain already; it isn't
			// this bind's doing, so stop walking rather than loop forever.
			return false
		}
		visited[next] = true
		m := next.meta.Load()
		if m == nil || m.upstream == nil {
			return false
		}
		cur = m.upstream
	}
}

// BindTo points the proxy at a new upstream, following the two-phase
// protocol from spec §4.5: pre-check, atomic swap, post-check with
// rollback, teardown of the prior binding, then self-invalidation.
func (b *Bindable) BindTo(candidate Upstream, takeOwnership bool) error {
	if candidate == nil {
		return ErrInvalidState
	}
	if b.IsClosed() {
		return ErrInvalidState
	}

	// 1. Pre-check.
	if WouldCreateCycle(b, candidate) {
		return ErrCycleDetected
	}

	old := b.meta.Load()
	next := &bindMeta{upstream: candidate, takeOwnership: takeOwnership}

	// 2. Atomic swap of the binding record. If this proxy currently has
	// demand, register with the new upstream now so there is no gap in
	// push delivery between the swap and the old registration's teardown.
	wasSubscribed := b.gate.subscribed.Load()
	b.meta.Store(next)
	b.setUpstreams([]Upstream{candidate})
	if wasSubscribed {
		candidate.AddTarget(b.Computed)
	}

	// 3. Post-check: a concurrent bind on another upstream in the chain
	// could have closed a cycle that didn't exist at step 1.
	if WouldCreateCycle(b, candidate) {
		b.meta.CompareAndSwap(next, old)
		if old != nil && old.upstream != nil {
			b.setUpstreams([]Upstream{old.upstream})
		} else {
			b.setUpstreams(nil)
		}
		if wasSubscribed {
			candidate.RemoveTarget(b.Computed)
			if old != nil && old.upstream != nil {
				old.upstream.AddTarget(b.Computed)
			}
		}
		return ErrCycleDetected
	}

	// 4. Tear down the prior binding.
	if wasSubscribed && old != nil && old.upstream != nil {
		old.upstream.RemoveTarget(b.Computed)
	}
	if old != nil && old.takeOwnership && old.upstream != nil && old.upstream != candidate {
		if closer, ok := old.upstream.(Closer); ok {
			closer.Close()
		}
	}

	// 5. Self is now dirty regardless of whether the forwarded value
	// happens to be equal to before — the rebind itself is the change.
	Default.Batch(func() {
		b.forceVersionBump()
		Default.bumpGlobalVersion()
		b.markDirty()
	})

	return nil
}

// Write forwards to the current binding if it is Writable, silently
// no-op-ing otherwise. This is the method that satisfies Writable itself,
// so a Bindable can be chained as another Bindable's binding target.
func (b *Bindable) Write(v any) { _ = b.WriteResult(v) }

// Update forwards fn to the current binding's Update if it is Writable.
func (b *Bindable) Update(fn func(any) any) { _ = b.UpdateResult(fn) }

// WriteResult is Write with a synchronous error for direct callers (spec
// §9 InvalidState: "operation on an unbound bindable that requires a
// target... surfaced synchronously to the caller"). It captures the
// binding snapshot at entry, so a concurrent BindTo racing this call can't
// make the write land on the new target instead of the one the caller saw.
func (b *Bindable) WriteResult(v any) error {
	m := b.meta.Load()
	if m == nil || m.upstream == nil {
		return ErrInvalidState
	}
	w, ok := m.upstream.(Writable)
	if !ok {
		return ErrInvalidState
	}
	w.Write(v)
	return nil
}

// UpdateResult is Update with a synchronous error, same snapshot guarantee
// as WriteResult.
func (b *Bindable) UpdateResult(fn func(any) any) error {
	m := b.meta.Load()
	if m == nil || m.upstream == nil {
		return ErrInvalidState
	}
	w, ok := m.upstream.(Writable)
	if !ok {
		return ErrInvalidState
	}
	w.Update(fn)
	return nil
}

// Close unbinds and, if the final binding was taken by ownership, closes
// it too. Computed.Close already drives the demand gate to zero, which
// unregisters from whatever upstream is still recorded.
func (b *Bindable) Close() {
	m := b.meta.Load()
	b.Computed.Close()
	if m != nil && m.takeOwnership && m.upstream != nil {
		if closer, ok := m.upstream.(Closer); ok {
			closer.Close()
		}
	}
}
