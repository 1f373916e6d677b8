package reactive

import "github.com/latchwire/reactive/internal/graph"

// Bindable is a runtime-rebindable proxy (spec C5): it forwards reads to
// whatever it is currently bound to, and can be re-pointed at a different
// upstream later via BindTo.
type Bindable[T any] struct {
	node *graph.Bindable
}

// NewBindable constructs a proxy, optionally already bound to initial
// (pass nil to start unbound; Read then fails with ErrInvalidState).
// takeOwnership, if true, closes the bound upstream when it is later
// replaced or when this Bindable itself is closed.
func NewBindable[T comparable](initial Upstream, takeOwnership bool) *Bindable[T] {
	var raw graph.Upstream
	if initial != nil {
		raw = initial.rawUpstream()
	}
	return &Bindable[T]{node: graph.NewBindable(raw, takeOwnership, equalComparable[T])}
}

// Read pulls the current value through whatever is currently bound.
func (b *Bindable[T]) Read() (T, error) {
	v, err := b.node.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v), nil
}

// BindTo points the proxy at a new upstream. It fails with
// ErrCycleDetected if doing so would close a cycle through a chain of
// bindable proxies.
func (b *Bindable[T]) BindTo(upstream Upstream, takeOwnership bool) error {
	return b.node.BindTo(upstream.rawUpstream(), takeOwnership)
}

// IsBound reports whether the proxy currently forwards to an upstream.
func (b *Bindable[T]) IsBound() bool { return b.node.IsBound() }

// CurrentBinding returns the upstream this proxy currently forwards to,
// if any.
func (b *Bindable[T]) CurrentBinding() (Upstream, bool) {
	raw, ok := b.node.CurrentBinding()
	if !ok {
		return nil, false
	}
	return rawUpstreamHandle{raw}, true
}

// WouldCreateCycle reports whether binding self to candidate would close a
// cycle in the transitive "binds to" relation among bindable proxies,
// without actually attempting the bind.
func WouldCreateCycle[T any](self *Bindable[T], candidate Upstream) bool {
	return graph.WouldCreateCycle(self.node, candidate.rawUpstream())
}

// rawUpstreamHandle adapts an untyped graph.Upstream back into the public
// Upstream capability for CurrentBinding's return value, since the typed
// wrapper that originally produced it isn't recoverable from the engine
// alone.
type rawUpstreamHandle struct{ u graph.Upstream }

func (r rawUpstreamHandle) rawUpstream() graph.Upstream { return r.u }

// Subscribe delivers the current value (or failure) synchronously, then
// fn on every subsequent change or rebind, until the returned func is
// called.
func (b *Bindable[T]) Subscribe(fn func(Result[T])) func() {
	return b.node.Subscribe(func(r graph.Result) { fn(resultFrom[T](r)) })
}

// Version is the node's own monotonic version counter; it advances on
// every successful rebind, unconditionally, in addition to every forwarded
// value change.
func (b *Bindable[T]) Version() int64 { return b.node.Version() }

// Close unbinds and, if the final binding was taken by ownership, closes
// it too.
func (b *Bindable[T]) Close() { b.node.Close() }

func (b *Bindable[T]) rawUpstream() graph.Upstream { return b.node }

// MutableBindable additionally forwards writes through to whatever is
// currently bound, snapshotting the binding at the moment Write/Update is
// called so a concurrent rebind can't redirect a write already in flight.
type MutableBindable[T any] struct {
	*Bindable[T]
}

// NewMutableBindable is NewBindable for the writable variant.
func NewMutableBindable[T comparable](initial Upstream, takeOwnership bool) *MutableBindable[T] {
	return &MutableBindable[T]{Bindable: NewBindable[T](initial, takeOwnership)}
}

// Write forwards to the bound upstream's Write, if it is writable.
// ErrInvalidState if the proxy is unbound or bound to a non-writable node.
func (m *MutableBindable[T]) Write(v T) error {
	return m.node.WriteResult(v)
}

// Update forwards fn to the bound upstream's Update.
func (m *MutableBindable[T]) Update(fn func(T) T) error {
	return m.node.UpdateResult(func(v any) any { return fn(as[T](v)) })
}
