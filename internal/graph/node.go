package graph

import "sync/atomic"

// Flag is the tri-state computed-node flag from spec §3/§4.3.
type Flag int32

const (
	FlagClean Flag = iota
	FlagMaybeDirty
	FlagDirty
)

// Closer is implemented by every node kind; a Bindable that owns its
// upstream calls Close on it through this interface (spec §4.5).
type Closer interface {
	Close()
}

// Writable is an Upstream that also accepts writes — a Source, or a
// mutable Bindable chained as someone else's binding target.
type Writable interface {
	Upstream
	Write(v any)
	Update(fn func(any) any)
}

// Target is implemented by Computed: it is the thing a Source, Computed,
// Bindable, or Adapter pushes invalidation into (spec §3: "Target set:
// unordered collection of downstream computed nodes that have registered
// to be notified on invalidation").
type Target interface {
	markDirty()
	markMaybeDirty()
}

// base is embedded by every node kind (Source, Computed, Bindable,
// Adapter). It carries the parts of the data model spec §3 says every
// node has: a stable identity, a target set, and an observer set. It does
// not carry the value cell or version — those differ in shape between a
// plain value cell (Source/Adapter) and a cached-computation cell
// (Computed/Bindable), so each node kind stores its own.
type base struct {
	id        uint64
	closed    atomic.Bool
	targets   *cowSet[Target]
	observers *Registry
}

func newBase() base {
	return base{
		id:        newNodeID(),
		targets:   newCowSet[Target](),
		observers: NewRegistry(),
	}
}

func (b *base) ID() uint64      { return b.id }
func (b *base) IsClosed() bool  { return b.closed.Load() }
func (b *base) markClosed() bool {
	return b.closed.CompareAndSwap(false, true)
}

// addTarget/removeTarget implement the non-lazy half of §4.3's "Lazy
// registration": the bookkeeping a Computed's upstreams use to remember
// who depends on them. The *decision* of when to call these (demand
// crossing 0<->1) lives on the Computed itself.
func (b *base) addTarget(t Target)    { b.targets.Add(t) }
func (b *base) removeTarget(t Target) { b.targets.Remove(t) }

// pushTargetsDirty / pushTargetsMaybeDirty propagate a push-phase
// transition to every registered target, per spec §4.3.
func (b *base) pushTargetsDirty() {
	for _, t := range b.targets.Snapshot() {
		t.markDirty()
	}
}

func (b *base) pushTargetsMaybeDirty() {
	for _, t := range b.targets.Snapshot() {
		t.markMaybeDirty()
	}
}

func (b *base) hasDemand() bool {
	return b.observers.Len() > 0 || b.targets.Len() > 0
}
