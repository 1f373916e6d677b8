// Package reactive is a glitch-free reactive dependency graph: writable
// Sources, derived Computeds with push-pull invalidation, runtime-
// rebindable Bindable proxies, and bidirectional Adapters bridging values
// in and out of external systems. The engine underneath (internal/graph)
// is lock-free: every node uses sync/atomic compare-and-swap instead of
// mutexes, so reads and writes never block on each other.
package reactive
