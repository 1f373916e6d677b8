package graph

import "sync/atomic"

// ComputeFunc evaluates a computed node against its current upstream
// values, read in declaration order.
type ComputeFunc func(upstreamValues []any) (any, error)

// computeError is the stored-error cell from spec §4.3 step 1: the error
// plus the upstream version snapshot in effect when it was produced, so a
// later pull can tell whether anything has changed since.
type computeError struct {
	err  error
	seen []int64
}

// Computed is the derived node (spec C3) — the core of the whole design.
type Computed struct {
	base
	gate demandGate

	compute ComputeFunc
	equal   EqualFunc

	upstreams atomic.Pointer[[]Upstream]

	flag atomic.Int32 // Flag

	cache    atomic.Pointer[valueBox]
	version  atomic.Int64
	lastSeen atomic.Pointer[[]int64] // parallel to upstreams, as of the last successful recompute

	storedErr atomic.Pointer[computeError]

	// computing single-flights recompute: only the CAS winner actually
	// invokes compute(); a concurrent loser takes the node's current
	// cache/error rather than spin-waiting, which keeps the node
	// genuinely non-blocking (spec §5: "All operations complete without
	// yielding"). See DESIGN.md for why this is the chosen reading of
	// "single-flight recompute on read".
	computing atomic.Bool

	lastNotifiedVersion atomic.Int64
	notify              *Effect
}

// NewComputed declares a computed node over a fixed upstream list (spec
// §4.3: "a static list of upstream nodes"). Initial flag is DIRTY.
func NewComputed(upstreams []Upstream, compute ComputeFunc, equal EqualFunc) *Computed {
	c := &Computed{base: newBase(), compute: compute, equal: equal}
	us := append([]Upstream(nil), upstreams...)
	c.upstreams.Store(&us)
	c.flag.Store(int32(FlagDirty))
	c.lastNotifiedVersion.Store(-1)
	c.notify = NewEffect(c.deliverIfChanged)
	return c
}

func (c *Computed) Version() int64 { return c.version.Load() }

// Read pulls the current value, recomputing as needed (spec §4.3 Pull
// phase).
func (c *Computed) Read() (any, error) { return c.pull() }

// ReadResult satisfies Upstream.
func (c *Computed) ReadResult() (any, error) { return c.pull() }

func (c *Computed) cachedValue() any {
	box := c.cache.Load()
	if box == nil {
		return nil
	}
	return box.v
}

func (c *Computed) lastSeenSnapshot() []int64 {
	p := c.lastSeen.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (c *Computed) upstreamList() []Upstream { return *c.upstreams.Load() }

// setUpstreams atomically replaces the dependency list. Used by the
// flatten/switch operator (spec §4.7) from inside that node's own
// recompute, and by Bindable.BindTo (and its rollback) when a rebind
// swaps the single upstream slot.
func (c *Computed) setUpstreams(us []Upstream) {
	cp := append([]Upstream(nil), us...)
	c.upstreams.Store(&cp)
}

// upstreamsChangedSince reports whether any upstream's version has moved
// past seen. Each upstream is validated via ReadResult first — a
// computed upstream only bumps its own version inside its own recompute,
// so a MAYBE_DIRTY upstream that hasn't recomputed yet still reports its
// old (pre-write) version to a bare Version() call. Pulling it first
// forces that recompute to happen before the comparison, which is what
// makes a MAYBE_DIRTY resolution here (and the stored-error check in
// pull's step 1) see the upstream's real current version instead of a
// stale one. An upstream that fails to validate counts as changed, so
// the caller falls through to recompute, which re-reads it and captures
// the failure properly as an UpstreamFailure.
func (c *Computed) upstreamsChangedSince(seen []int64) bool {
	us := c.upstreamList()
	if len(seen) != len(us) {
		return true
	}
	changed := false
	for i, u := range us {
		if _, err := u.ReadResult(); err != nil {
			changed = true
			continue
		}
		if u.Version() != seen[i] {
			changed = true
		}
	}
	return changed
}

// pull implements spec §4.3's four-step read algorithm.
func (c *Computed) pull() (any, error) {
	if se := c.storedErr.Load(); se != nil {
		if !c.upstreamsChangedSince(se.seen) {
			return nil, se.err
		}
		c.storedErr.Store(nil)
	}

	switch Flag(c.flag.Load()) {
	case FlagClean:
		if !c.upstreamsChangedSince(c.lastSeenSnapshot()) {
			return c.cachedValue(), nil
		}
	case FlagMaybeDirty:
		if c.upstreamsChangedSince(c.lastSeenSnapshot()) {
			c.flag.Store(int32(FlagDirty))
		} else {
			c.flag.CompareAndSwap(int32(FlagMaybeDirty), int32(FlagClean))
			return c.cachedValue(), nil
		}
	case FlagDirty:
		// fall through to recompute
	}

	return c.recompute()
}

func (c *Computed) recompute() (any, error) {
	// The reentrancy check comes before the single-flight CAS: a re-entrant
	// recompute on the same goroutine would otherwise lose that CAS and
	// return the cached value instead of reporting the cycle.
	if ok, leave := (reentrancyGuard{}).enter(c.id); !ok {
		c.storedErr.Store(&computeError{err: ErrCycleDetected, seen: c.lastSeenSnapshot()})
		c.flag.Store(int32(FlagClean))
		return nil, ErrCycleDetected
	} else {
		defer leave()
	}

	if !c.computing.CompareAndSwap(false, true) {
		if se := c.storedErr.Load(); se != nil {
			return nil, se.err
		}
		return c.cachedValue(), nil
	}
	defer c.computing.Store(false)

	us := c.upstreamList()
	values := make([]any, len(us))
	seen := make([]int64, len(us))
	var upstreamErr error
	for i, u := range us {
		v, err := u.ReadResult()
		seen[i] = u.Version()
		values[i] = v
		if err != nil && upstreamErr == nil {
			upstreamErr = err
		}
	}
	if upstreamErr != nil {
		// seen is fully populated for every upstream, including those
		// after the failing one, so a later pull's upstreamsChangedSince
		// compares against real versions instead of zero values for the
		// indices this loop hadn't reached yet when it returned early.
		werr := &UpstreamFailure{Err: upstreamErr}
		c.storedErr.Store(&computeError{err: werr, seen: seen})
		c.flag.Store(int32(FlagClean))
		return nil, werr
	}

	result, err := c.safeCompute(values)
	if err != nil {
		cf := &ComputeFailure{Err: err}
		c.storedErr.Store(&computeError{err: cf, seen: seen})
		c.flag.Store(int32(FlagClean))
		return nil, cf
	}

	c.publish(result, seen)
	c.flag.Store(int32(FlagClean))
	return result, nil
}

func (c *Computed) safeCompute(values []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asFailure(r)
		}
	}()
	return c.compute(values)
}

func (c *Computed) publish(result any, seen []int64) {
	old := c.cache.Load()
	if old == nil || !c.equal(old.v, result) {
		c.cache.Store(&valueBox{v: result})
		c.version.Add(1)
	}
	c.lastSeen.Store(&seen)
}

// forceVersionBump increments the node's version unconditionally, bypassing
// the equality gate in publish. Used only by Bindable.BindTo: a rebind is a
// node-level event in its own right (spec §4.5 step 5), distinct from the
// forwarded value happening to change.
func (c *Computed) forceVersionBump() int64 { return c.version.Add(1) }

// markDirty is the push-phase entry point called by an upstream that has
// just observed a certain value change (spec §4.3).
func (c *Computed) markDirty() {
	old := Flag(c.flag.Swap(int32(FlagDirty)))
	if old == FlagClean {
		c.pushTargetsMaybeDirty()
		if c.observers.Len() > 0 {
			Default.ScheduleEffect(c.notify)
		}
	}
}

// markMaybeDirty is the push-phase entry point for a transitively
// invalidated (but not certainly changed) upstream.
func (c *Computed) markMaybeDirty() {
	if !c.flag.CompareAndSwap(int32(FlagClean), int32(FlagMaybeDirty)) {
		return
	}
	c.pushTargetsMaybeDirty()
	if c.observers.Len() > 0 {
		Default.ScheduleEffect(c.notify)
	}
}

func (c *Computed) deliverIfChanged() {
	v, err := c.pull()
	if err != nil {
		c.observers.NotifyBatched(Failed(err))
		return
	}
	newVersion := c.Version()
	for {
		old := c.lastNotifiedVersion.Load()
		if old == newVersion {
			return
		}
		if c.lastNotifiedVersion.CompareAndSwap(old, newVersion) {
			break
		}
	}
	c.observers.NotifyBatched(Success(v))
}

func (c *Computed) registerWithUpstreams() {
	for _, u := range c.upstreamList() {
		u.AddTarget(c)
	}
}

func (c *Computed) unregisterFromUpstreams() {
	for _, u := range c.upstreamList() {
		u.RemoveTarget(c)
	}
}

func (c *Computed) updateRegistration() {
	c.gate.update(c.hasDemand, c.IsClosed, c.registerWithUpstreams, c.unregisterFromUpstreams)
}

// AddTarget/RemoveTarget override base's so that gaining or losing a
// downstream target re-evaluates this node's own demand (spec §4.3,
// invariant 5: "Registration reflects demand").
func (c *Computed) AddTarget(t Target) {
	c.addTarget(t)
	c.updateRegistration()
}

func (c *Computed) RemoveTarget(t Target) {
	c.removeTarget(t)
	c.updateRegistration()
}

// Subscribe delivers the current value (or failure) synchronously before
// returning, then adds fn to the observer set. A panic from fn during
// this initial delivery is not recovered — it propagates to the caller,
// since no graph state has changed yet (spec §4.4, §9).
func (c *Computed) Subscribe(fn func(Result)) func() {
	if c.IsClosed() {
		return func() {}
	}

	v, err := c.pull()
	if err != nil {
		fn(Failed(err))
	} else {
		if c.observers.Len() == 0 {
			// No other observer is owed a pending delivery, so the version
			// delivered here counts as the last notified one.
			c.lastNotifiedVersion.Store(c.Version())
		}
		fn(Success(v))
	}

	h := c.observers.Add(fn)
	c.updateRegistration()

	return func() {
		c.observers.Remove(h)
		c.updateRegistration()
	}
}

// Close is idempotent; it clears observers and targets and deregisters
// from every upstream.
func (c *Computed) Close() {
	if !c.markClosed() {
		return
	}
	c.observers.Clear()
	c.targets.Clear()
	c.updateRegistration()
}
