package basis

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// derivCache memoizes the d x d coefficient-space derivative operators
// D_k = D1^k for a single basis instance, keyed by derivative order k.
// Basis variants with a closed-form D1 (Legendre, LagrangeGLL) embed one
// of these; the cache is filled lazily, with a single writer and many
// readers racing harmlessly to fill the same entry.
type derivCache struct {
	mu   sync.RWMutex
	d    int
	byK  map[int][]float64
}

func newDerivCache(d int) *derivCache {
	return &derivCache{d: d, byK: make(map[int][]float64)}
}

// get returns the cached D_k if present.
func (c *derivCache) get(k int) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.byK[k]
	return m, ok
}

// fill installs the cached D_k, computed by the caller under no lock
// (the computation itself is pure and idempotent, so a harmless race on
// first fill from two goroutines just recomputes the same matrix twice;
// only the map write is guarded).
func (c *derivCache) fill(k int, m []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byK[k]; !ok {
		c.byK[k] = m
	}
}

// gramCache memoizes the canonical Gram matrices G_k = D_k^T * G0 * D_k
// used by AddBlockDerivative, keyed by derivative order k, the same
// shape as derivCache.
type gramCache struct {
	mu  sync.RWMutex
	d   int
	byK map[int][]float64
}

func newGramCache(d int) *gramCache {
	return &gramCache{d: d, byK: make(map[int][]float64)}
}

func (c *gramCache) get(k int) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.byK[k]
	return m, ok
}

func (c *gramCache) fill(k int, m []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byK[k]; !ok {
		c.byK[k] = m
	}
}

// blockKey identifies one assembled block operator's sparsity pattern by
// the (N, c, k, d) quadruple; the operator's *values* still depend on
// tau, so callers must reassemble (cheaply, from the cached D_k)
// whenever tau changes — only the row/col shape and nnz-per-row count
// are cached here.
type blockKey struct {
	n, c, k, d int
}

// blockCache caches nnz-pattern metadata for assembled block-diagonal
// and continuity operators, keyed by (N, c, k, d). It uses an ordered
// map, so any enumeration of its contents is deterministic across runs;
// nothing in this module enumerates or traces it.
type blockCache struct {
	mu   sync.RWMutex
	tree *treemap.Map
}

func newBlockCache() *blockCache {
	return &blockCache{tree: treemap.NewWith(blockKeyComparator)}
}

func blockKeyComparator(a, b interface{}) int {
	ka, kb := a.(blockKey), b.(blockKey)
	switch {
	case ka.n != kb.n:
		return ka.n - kb.n
	case ka.c != kb.c:
		return ka.c - kb.c
	case ka.k != kb.k:
		return ka.k - kb.k
	default:
		return ka.d - kb.d
	}
}

type blockMeta struct {
	nnzPerRow int
	rows      int
	cols      int
}

func (c *blockCache) get(key blockKey) (blockMeta, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.tree.Get(key)
	if !ok {
		return blockMeta{}, false
	}
	return v.(blockMeta), true
}

func (c *blockCache) fill(key blockKey, meta blockMeta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tree.Get(key); !ok {
		c.tree.Put(key, meta)
	}
}
