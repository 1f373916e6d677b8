package graph

// NewFlattenSwitch builds a Computed that tracks an outer upstream whose
// value selects an inner upstream (selectInner), and always reflects
// whichever inner is currently selected (spec §4.7: "flatten/switch"). On
// a selection change it explicitly unregisters from the previous inner
// and registers with the new one, since a plain Computed's demand gate
// only reacts to 0<->1 observer/target transitions, not to its own
// upstream list changing shape out from under it.
func NewFlattenSwitch(outer Upstream, selectInner func(outerValue any) Upstream, equal EqualFunc) *Computed {
	var c *Computed
	var lastInner Upstream

	compute := func(vals []any) (any, error) {
		outerVal := vals[0]
		inner := selectInner(outerVal)
		changed := inner != lastInner
		prevInner := lastInner
		lastInner = inner

		if changed && c.gate.subscribed.Load() {
			if prevInner != nil {
				prevInner.RemoveTarget(c)
			}
			if inner != nil {
				inner.AddTarget(c)
			}
		}

		if inner == nil {
			c.setUpstreams([]Upstream{outer})
			return nil, nil
		}

		c.setUpstreams([]Upstream{outer, inner})
		if !changed && len(vals) > 1 {
			return vals[1], nil
		}
		return inner.ReadResult()
	}

	c = NewComputed([]Upstream{outer}, compute, equal)
	return c
}
