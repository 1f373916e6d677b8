package graph

// Upstream is whatever a Computed can declare as one of its static
// dependencies: a Source, another Computed, a Bindable, or an Adapter —
// spec §9's "capability interface" generalizing over node kinds rather
// than a tagged sum type, since Go interfaces already give us that for
// free.
type Upstream interface {
	Version() int64
	ReadResult() (any, error)
	AddTarget(t Target)
	RemoveTarget(t Target)
}
