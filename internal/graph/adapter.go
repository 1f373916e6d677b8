package graph

import "sync/atomic"

// ExternalProducer is the inbound half of an external-source adapter: it
// starts observing whatever lives outside the graph (a channel, a socket,
// a timer) and calls onValue for every value it produces, until the
// returned cancellation func is called (spec C6).
type ExternalProducer interface {
	Collect(onValue func(any)) (cancel func())
}

// ExternalSink is the outbound half. A read-only adapter has no sink.
type ExternalSink interface {
	Push(v any)
}

// Adapter bridges an external value stream into the graph as a Source,
// and optionally forwards locally-originated writes back out (spec §4.6:
// "bidirectional bridge"). Its collection task lifecycle mirrors lazy
// registration: producer.Collect only runs while something in the graph
// is actually observing the adapter.
type Adapter struct {
	*Source
	gate     demandGate
	producer ExternalProducer
	sink     ExternalSink
	cancel   atomic.Pointer[func()]

	// externalVersion records the Source version produced by the most
	// recent write that originated from the producer (onExternalValue),
	// not from a local caller. Guard 1 of the dual de-dup (spec §9): a
	// local Write landing on that same version is an echo of what we just
	// received, not a new local change, so it must not be forwarded back
	// out to the sink.
	externalVersion atomic.Int64

	// lastPushed is guard 2: even past the version check, don't Push the
	// same value to the sink twice in a row.
	lastPushed atomic.Pointer[valueBox]
}

// NewAdapter constructs a read-only adapter: values only flow in, from
// producer, never back out.
func NewAdapter(initial any, equal EqualFunc, producer ExternalProducer) *Adapter {
	return NewBidirectionalAdapter(initial, equal, producer, nil)
}

// NewBidirectionalAdapter additionally forwards locally-originated writes
// to sink.
func NewBidirectionalAdapter(initial any, equal EqualFunc, producer ExternalProducer, sink ExternalSink) *Adapter {
	a := &Adapter{
		Source:   NewSource(initial, equal),
		producer: producer,
		sink:     sink,
	}
	a.externalVersion.Store(-1)
	return a
}

func (a *Adapter) hasDemand() bool { return a.observers.Len() > 0 || a.targets.Len() > 0 }

func (a *Adapter) updateRegistration() {
	a.gate.update(a.hasDemand, a.IsClosed, a.startCollecting, a.stopCollecting)
}

func (a *Adapter) startCollecting() {
	cancel := a.producer.Collect(a.onExternalValue)
	a.cancel.Store(&cancel)
}

func (a *Adapter) stopCollecting() {
	if c := a.cancel.Swap(nil); c != nil {
		(*c)()
	}
}

// onExternalValue is the callback handed to producer.Collect.
func (a *Adapter) onExternalValue(v any) {
	if a.IsClosed() {
		return
	}
	before := a.Source.Version()
	a.Source.Write(v)
	if after := a.Source.Version(); after != before {
		a.externalVersion.Store(after)
	}
}

// Write is a locally-originated write: it updates the Source and then
// forwards to the sink, subject to the dual guard.
func (a *Adapter) Write(v any) {
	before := a.Source.Version()
	a.Source.Write(v)
	if a.Source.Version() != before {
		a.forwardIfNeeded(v)
	}
}

// Update is Write's read-modify-write form.
func (a *Adapter) Update(fn func(any) any) {
	before := a.Source.Version()
	a.Source.Update(fn)
	if a.Source.Version() != before {
		a.forwardIfNeeded(a.Source.Read())
	}
}

func (a *Adapter) forwardIfNeeded(v any) {
	if a.sink == nil {
		return
	}
	if a.externalVersion.Load() == a.Source.Version() {
		return
	}
	if last := a.lastPushed.Load(); last != nil && a.equal(last.v, v) {
		return
	}
	a.lastPushed.Store(&valueBox{v: v})
	a.sink.Push(v)
}

// AddTarget/RemoveTarget/Subscribe/Close shadow Source's so that demand
// transitions start and stop the collection task (spec §4.6).
func (a *Adapter) AddTarget(t Target) {
	a.addTarget(t)
	a.updateRegistration()
}

func (a *Adapter) RemoveTarget(t Target) {
	a.removeTarget(t)
	a.updateRegistration()
}

func (a *Adapter) Subscribe(fn func(Result)) func() {
	if a.IsClosed() {
		return func() {}
	}
	fn(Success(a.Source.Read()))
	h := a.observers.Add(fn)
	a.updateRegistration()
	return func() {
		a.observers.Remove(h)
		a.updateRegistration()
	}
}

func (a *Adapter) Close() {
	if !a.markClosed() {
		return
	}
	a.observers.Clear()
	a.targets.Clear()
	a.updateRegistration()
}
