//go:build !wasm

package graph

import (
	"sync"

	"github.com/petermattis/goid"
)

// recomputeStacks maps a goroutine id to the stack of Computed ids
// currently recomputing on it. goid is repurposed here from the teacher's
// implicit-tracking affinity check (internal/tracker.go's executingGID)
// into a reentrancy diagnostic: this design has no implicit per-goroutine
// tracking context to guard, but a synchronous recompute cycle is still a
// same-goroutine, same-call-stack phenomenon that goid can see.
var recomputeStacks sync.Map

func enterGoroutineStack(id uint64) (ok bool, leave func()) {
	gid := goid.Get()

	var stack []uint64
	if v, found := recomputeStacks.Load(gid); found {
		stack = *(v.(*[]uint64))
	}
	for _, seen := range stack {
		if seen == id {
			return false, func() {}
		}
	}

	next := append(append([]uint64(nil), stack...), id)
	recomputeStacks.Store(gid, &next)

	return true, func() {
		if len(stack) == 0 {
			recomputeStacks.Delete(gid)
			return
		}
		restored := stack
		recomputeStacks.Store(gid, &restored)
	}
}
