package graph

import "sync/atomic"

// cowSet is a copy-on-write set of comparable handles, shared by the
// observer registry and every node's target set (spec §4.4: "Thread-
// safety uses copy-on-write semantics: observer-set mutation publishes a
// new immutable snapshot; iterators traverse a snapshot"). Target sets
// (spec §3: "unordered collection of downstream computed nodes") reuse
// the exact same primitive even though order is not part of their
// contract — one mechanism, two uses, matching the teacher's habit of a
// single intrusive-list shape reused for both dependency and subscriber
// edges (internal/node.go's depsHead/subsHead).
type cowSet[T comparable] struct {
	snapshot atomic.Pointer[[]T]
}

func newCowSet[T comparable]() *cowSet[T] {
	s := &cowSet[T]{}
	empty := []T{}
	s.snapshot.Store(&empty)
	return s
}

// Add is a no-op if v is already present.
func (s *cowSet[T]) Add(v T) {
	for {
		old := s.snapshot.Load()
		for _, e := range *old {
			if e == v {
				return
			}
		}
		next := make([]T, len(*old)+1)
		copy(next, *old)
		next[len(*old)] = v
		if s.snapshot.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Remove is idempotent.
func (s *cowSet[T]) Remove(v T) {
	for {
		old := s.snapshot.Load()
		idx := -1
		for i, e := range *old {
			if e == v {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		next := make([]T, 0, len(*old)-1)
		next = append(next, (*old)[:idx]...)
		next = append(next, (*old)[idx+1:]...)
		if s.snapshot.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (s *cowSet[T]) Len() int { return len(*s.snapshot.Load()) }

func (s *cowSet[T]) Snapshot() []T { return *s.snapshot.Load() }

// Clear empties the set, returning whatever it held.
func (s *cowSet[T]) Clear() []T {
	empty := []T{}
	old := s.snapshot.Swap(&empty)
	return *old
}
