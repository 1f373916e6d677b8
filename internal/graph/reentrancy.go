package graph

// reentrancyGuard catches a synchronous recompute cycle immediately
// instead of recursing until the goroutine stack overflows. Spec §4.3's
// cycle detection is about the static upstream list (Bindable's bind-time
// walk); it doesn't rule out a Computed whose compute function reaches
// back into reading itself through two different upstream paths. enter
// records a node id as in-progress on the calling goroutine; a second
// enter for the same id on the same goroutine, before the first leaves,
// reports the cycle.
type reentrancyGuard struct{}

func (reentrancyGuard) enter(id uint64) (ok bool, leave func()) {
	return enterGoroutineStack(id)
}
