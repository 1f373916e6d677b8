package graph

import "sync/atomic"

// effectQueue is a lock-free multi-producer single-consumer queue of
// scheduled effects (spec: "lock-free multi-producer single-consumer
// queue of effect handles"). It is built the same way the teacher builds
// its intrusive doubly-linked lists in internal/heap.go and internal/link.go
// — manual pointer bookkeeping — except every link is published with
// atomic.Pointer instead of a plain field, and producers never take a lock.
//
// Push is the classic Treiber-stack CAS loop. Pop uses the two-stack
// trick: producers only ever prepend to `in`; the single consumer (the
// flushing goroutine, serialized by Runtime.flushing) periodically moves
// the whole `in` stack into a consumer-private `out` stack, reversing it
// once so that FIFO order (enqueue order, per spec §4.1 "Ordering") is
// preserved without any producer ever blocking.
type effectQueue struct {
	in  atomic.Pointer[effectNode]
	out *effectNode // touched only by the single consumer
}

type effectNode struct {
	effect *Effect
	next   *effectNode
}

func newEffectQueue() *effectQueue {
	return &effectQueue{}
}

// push enqueues e. Safe for concurrent callers.
func (q *effectQueue) push(e *Effect) {
	n := &effectNode{effect: e}
	for {
		head := q.in.Load()
		n.next = head
		if q.in.CompareAndSwap(head, n) {
			return
		}
	}
}

// pop dequeues the oldest effect. Must only be called by the thread
// currently holding the flush role (Runtime.flushing == true).
func (q *effectQueue) pop() (*Effect, bool) {
	if q.out == nil {
		head := q.in.Swap(nil)
		for head != nil {
			next := head.next
			head.next = q.out
			q.out = head
			head = next
		}
	}
	if q.out == nil {
		return nil, false
	}
	e := q.out.effect
	q.out = q.out.next
	return e, true
}

func (q *effectQueue) empty() bool {
	return q.out == nil && q.in.Load() == nil
}
