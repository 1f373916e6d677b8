package graph

import "sync/atomic"

// nextNodeID hands out the stable identities nodes use for referential
// comparison and cycle detection (spec: node identity, never relocated).
var nextNodeID atomic.Uint64

func newNodeID() uint64 {
	return nextNodeID.Add(1)
}
