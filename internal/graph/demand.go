package graph

import "sync/atomic"

// demandGate runs the lazy-registration state machine shared by Computed
// (registering with its upstreams) and the external-source Adapter
// (starting/stopping its collection task): "a computed node only
// registers itself as a target upstream when it has >=1 observer or >=1
// target... it deregisters when both collections drop to empty" (spec
// §4.3), and "Collection task lifecycle mirrors lazy registration" (spec
// §4.6). Both races called out in spec §4.3/§5 — close-during-register
// and reader-during-unregister — are handled once here instead of being
// duplicated in each caller.
type demandGate struct {
	subscribed atomic.Bool
}

// update toggles the gate to match hasDemand(), calling subscribe()/
// unsubscribe() on the transition edges, with post-check undo for the two
// documented races.
func (g *demandGate) update(hasDemand func() bool, closed func() bool, subscribe, unsubscribe func()) {
	if hasDemand() {
		if g.subscribed.CompareAndSwap(false, true) {
			subscribe()
			if closed() {
				// Close-during-register: undo the registration we just won.
				unsubscribe()
				g.subscribed.Store(false)
			}
		}
		return
	}

	if g.subscribed.CompareAndSwap(true, false) {
		unsubscribe()
		if hasDemand() && !closed() {
			// Reader-during-unregister: demand reappeared while we were
			// tearing down; re-register.
			if g.subscribed.CompareAndSwap(false, true) {
				subscribe()
			}
		}
	}
}
