package engine

import (
	"container/list"
	"hash/fnv"
	"sync"

	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// DefaultCacheSize bounds the decision cache.
const DefaultCacheSize = 256

// cacheKey contains every input the decision depends on. Session-dependent
// inputs (context role, greeting flag) are part of the key so a cached
// result can never leak across session boundaries.
type cacheKey struct {
	characterID string
	textHash    uint64
	slot        timeslot.Slot
	category    emotion.Category
	context     types.Context
	greeting    bool
}

type cacheEntry struct {
	key    cacheKey
	result types.Result
}

// decisionCache is a small LRU over completed selections. Purely a
// performance optimization; eviction drops the oldest entry on overflow.
type decisionCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	entries  map[cacheKey]*list.Element
}

func newDecisionCache(capacity int) *decisionCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &decisionCache{
		capacity: capacity,
		ll:       list.New(),
		entries:  make(map[cacheKey]*list.Element),
	}
}

func (c *decisionCache) get(key cacheKey) (types.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return types.Result{}, false
	}
	c.ll.MoveToFront(el)
	return copyResult(el.Value.(*cacheEntry).result), true
}

func (c *decisionCache) add(key cacheKey, result types.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).result = copyResult(result)
		c.ll.MoveToFront(el)
		return
	}
	c.entries[key] = c.ll.PushFront(&cacheEntry{key: key, result: copyResult(result)})
	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// copyResult detaches the fallback chain so callers cannot mutate cached
// state.
func copyResult(r types.Result) types.Result {
	if len(r.FallbackChain) > 0 {
		chain := make([]string, len(r.FallbackChain))
		copy(chain, r.FallbackChain)
		r.FallbackChain = chain
	}
	return r
}

func hashText(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}
