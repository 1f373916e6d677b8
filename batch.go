package reactive

import "github.com/latchwire/reactive/internal/graph"

// Batch runs fn with notifications deferred until fn returns (including
// on a panicking exit), so dependents recompute and observers are
// notified once for the whole block instead of once per write.
func Batch(fn func()) { graph.Default.Batch(fn) }
