package reactive

import "sync"

// Group is a flat disposal helper: it collects closers and runs them all
// on CloseAll, most-recently-added first. Unlike the teacher's Owner,
// Group is deliberately not a tree — no parent/child nesting, no
// propagation, just a list of things to close together.
type Group struct {
	mu      sync.Mutex
	closers []func()
	closed  bool
}

// NewGroup returns an empty group.
func NewGroup() *Group { return &Group{} }

// Add registers closer to run on CloseAll. If the group is already
// closed, closer runs immediately instead.
func (g *Group) Add(closer func()) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		closer()
		return
	}
	g.closers = append(g.closers, closer)
	g.mu.Unlock()
}

// CloseAll runs every registered closer, most-recently-added first, then
// marks the group closed. Idempotent.
func (g *Group) CloseAll() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	closers := g.closers
	g.closers = nil
	g.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
