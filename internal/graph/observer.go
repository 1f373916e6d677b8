package graph

// Observer is a registered callback handle. Identity (the pointer, not
// the function value) is what Remove matches on, so the same func(Result)
// could in principle be registered twice as two distinct subscriptions.
type Observer struct {
	fn func(Result)
}

// Registry is the per-node observer set (spec §3: "ordered collection of
// callback handles", §4.4: copy-on-write). Every mutation publishes a new
// immutable snapshot; iteration always traverses one fixed snapshot, so a
// concurrent add/remove never perturbs an in-flight notification loop —
// that is also what makes "unsubscribe during delivery" safe (spec §4.4):
// the callback removed from inside itself has already been read off the
// snapshot the current NotifyBatched call is iterating.
type Registry struct {
	set *cowSet[*Observer]
}

func NewRegistry() *Registry {
	return &Registry{set: newCowSet[*Observer]()}
}

// Add appends fn, preserving insertion order, and returns its handle.
func (r *Registry) Add(fn func(Result)) *Observer {
	h := &Observer{fn: fn}
	r.set.Add(h)
	return h
}

// Remove drops h. Idempotent: removing an already-absent handle is a
// no-op, which is what makes repeated Unsubscribe calls safe.
func (r *Registry) Remove(h *Observer) { r.set.Remove(h) }

// Len reports the current observer count (used for lazy-registration
// demand checks, spec §4.3).
func (r *Registry) Len() int { return r.set.Len() }

// Snapshot returns the immutable slice observers should be delivered to
// for one notification pass.
func (r *Registry) Snapshot() []*Observer { return r.set.Snapshot() }

// NotifyBatched delivers res to every observer in the snapshot, in
// registration order, catching and discarding any panic from an
// individual callback (spec §4.4: "the runtime catches and discards
// thrown errors raised by observers" during batched delivery).
func (r *Registry) NotifyBatched(res Result) {
	for _, h := range r.Snapshot() {
		deliverBatched(h, res)
	}
}

func deliverBatched(h *Observer, res Result) {
	defer func() { _ = recover() }()
	h.fn(res)
}

// Clear empties the registry, returning the snapshot it held (used on
// close to detach every observer in one step).
func (r *Registry) Clear() []*Observer { return r.set.Clear() }
