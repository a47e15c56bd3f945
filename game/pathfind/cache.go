package pathfind

import (
	"container/list"
	"sync"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// DefaultCacheSize bounds the result cache.
const DefaultCacheSize = 100

// cacheKey identifies a repeatable query: start, goal encoding, algorithm,
// and a digest of the visibility mask.
type cacheKey struct {
	start     grid.Position
	goal      string
	algorithm Algorithm
	masks     uint64
}

// resultCache is a bounded least-recently-used store of search results.
// Entries are immutable once inserted; a hit returns the stored result
// unchanged and promotes it to most recently used. The lookup-or-insert
// sequence is mutex-guarded so concurrent callers cannot corrupt eviction
// order or double-insert a key.
type resultCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	entries map[cacheKey]*list.Element
}

type cacheEntry struct {
	key    cacheKey
	result *SearchResult
}

func newResultCache(maxSize int) *resultCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &resultCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[cacheKey]*list.Element),
	}
}

// get returns the cached result for the key, promoting it to most
// recently used.
func (c *resultCache) get(key cacheKey) (*SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).result, true
}

// put stores a result, evicting the least recently used entry when the
// cache is full. Negative (not-found) results are cached too.
func (c *resultCache) put(key cacheKey, result *SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).result = result
		return
	}

	elem := c.order.PushFront(&cacheEntry{key: key, result: result})
	c.entries[key] = elem

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// clear drops every entry. Sessions call this when the grid mutates so a
// stale hit can never serve outdated terrain.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[cacheKey]*list.Element)
}

// len returns the current entry count.
func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
