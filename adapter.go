package reactive

import "github.com/latchwire/reactive/internal/graph"

// ExternalProducer is the inbound half of an external-source adapter
// (spec C6): it starts observing whatever lives outside the graph and
// calls onValue for every value it produces, until the returned
// cancellation is called.
type ExternalProducer[T any] interface {
	Collect(onValue func(T)) (cancel func())
}

// ExternalSink is the outbound half of a bidirectional adapter.
type ExternalSink[T any] interface {
	Push(v T)
}

type rawProducer[T any] struct{ p ExternalProducer[T] }

func (r rawProducer[T]) Collect(onValue func(any)) (cancel func()) {
	return r.p.Collect(func(v T) { onValue(v) })
}

type rawSink[T any] struct{ s ExternalSink[T] }

func (r rawSink[T]) Push(v any) { r.s.Push(as[T](v)) }

// Adapter bridges an external value stream into the graph as a Source,
// and optionally forwards locally-originated writes back out.
type Adapter[T any] struct {
	node *graph.Adapter
}

// NewAdapter constructs a read-only adapter.
func NewAdapter[T comparable](initial T, producer ExternalProducer[T]) *Adapter[T] {
	return &Adapter[T]{node: graph.NewAdapter(initial, equalComparable[T], rawProducer[T]{producer})}
}

// NewBidirectionalAdapter additionally forwards locally-originated writes
// to sink, guarded against echoing a value just received from producer.
func NewBidirectionalAdapter[T comparable](initial T, producer ExternalProducer[T], sink ExternalSink[T]) *Adapter[T] {
	return &Adapter[T]{node: graph.NewBidirectionalAdapter(initial, equalComparable[T], rawProducer[T]{producer}, rawSink[T]{sink})}
}

func (a *Adapter[T]) Read() T { return as[T](a.node.Read()) }

func (a *Adapter[T]) Write(v T) { a.node.Write(v) }

func (a *Adapter[T]) Update(fn func(T) T) {
	a.node.Update(func(v any) any { return fn(as[T](v)) })
}

func (a *Adapter[T]) Subscribe(fn func(Result[T])) func() {
	return a.node.Subscribe(func(r graph.Result) { fn(resultFrom[T](r)) })
}

func (a *Adapter[T]) Version() int64 { return a.node.Version() }

// Close stops the collection task (if running) and detaches every
// observer and target.
func (a *Adapter[T]) Close() { a.node.Close() }

func (a *Adapter[T]) rawUpstream() graph.Upstream { return a.node }
