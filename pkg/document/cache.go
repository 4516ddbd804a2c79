package document

import (
	"github.com/yaklabco/mdident/pkg/identity"
	"github.com/yaklabco/mdident/pkg/mdast"
)

// IdentityCache memoizes computed NodeIDs by node instance within a single
// process run.
//
// The cache key is the node's pointer (Go's instance identity), not its
// content. That makes the cache cheap and correct for immutable nodes, and
// also makes it strictly process-local: it cannot be serialized, shared
// across processes, or trusted after deserializing a Document. Only the
// NodeID's canonical string form is stable across runs; consumers must
// recompute identity after deserialization rather than transmit a cache.
//
// IdentityCache is NOT thread-safe. Each Document owns exactly one cache
// and processes its tree on a single goroutine; callers that parallelize
// traversal must use one cache per worker or synchronize externally.
//
// The cache is unbounded for the lifetime of its Document. In practice it
// is bounded by tree size, so no eviction policy is needed.
type IdentityCache struct {
	ids      map[*mdast.Node]identity.NodeID
	maxDepth int
	computes int
}

// NewIdentityCache creates an empty cache with the given canonicalization
// depth bound. A non-positive bound selects mdast.DefaultMaxDepth.
func NewIdentityCache(maxDepth int) *IdentityCache {
	if maxDepth <= 0 {
		maxDepth = mdast.DefaultMaxDepth
	}
	return &IdentityCache{
		ids:      make(map[*mdast.Node]identity.NodeID),
		maxDepth: maxDepth,
	}
}

// GetOrCompute returns the NodeID for a node instance, computing it via
// canonicalization and derivation on first sight and returning the
// memoized value afterwards.
func (c *IdentityCache) GetOrCompute(n *mdast.Node) (identity.NodeID, error) {
	if id, ok := c.ids[n]; ok {
		return id, nil
	}

	canonical, err := mdast.CanonicalizeDepth(n, c.maxDepth)
	if err != nil {
		return identity.NodeID{}, err
	}

	id := identity.Derive(canonical, mdast.HintText(n))
	c.ids[n] = id
	c.computes++

	return id, nil
}

// Computes returns how many identities have been computed (cache misses).
// Exposed so tests can observe that hits skip recomputation.
func (c *IdentityCache) Computes() int {
	return c.computes
}

// Len returns the number of cached entries.
func (c *IdentityCache) Len() int {
	return len(c.ids)
}
