package onedb

import (
	"container/list"
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
)

// stmtCache is an LRU cache of prepared statements keyed by statement text.
// With caching on, Query reuses the prepared statement for repeated SQL
// instead of preparing per call.
type stmtCache struct {
	cap    int
	mu     sync.Mutex
	ll     *list.List // front = most recently used
	m      map[string]*list.Element
	hits   uint64
	misses uint64
}

type stmtEntry struct {
	key  string
	stmt *sql.Stmt
}

func newStmtCache(capacity int) *stmtCache {
	if capacity < 0 {
		capacity = 0
	}
	return &stmtCache{cap: capacity, ll: list.New(), m: make(map[string]*list.Element)}
}

// EnableStmtCache turns on prepared statement caching with the given
// capacity. Zero capacity disables caching again.
func (m *Manager) EnableStmtCache(capacity int) {
	if m == nil {
		return
	}
	if capacity <= 0 {
		if m.cache != nil {
			m.cache.closeAll()
		}
		m.cache = nil
		return
	}
	m.cache = newStmtCache(capacity)
}

// StmtCacheStats reports cache hits and misses since the cache was enabled.
func (m *Manager) StmtCacheStats() (hits, misses uint64) {
	if m == nil || m.cache == nil {
		return 0, 0
	}
	return atomic.LoadUint64(&m.cache.hits), atomic.LoadUint64(&m.cache.misses)
}

func (c *stmtCache) getOrPrepare(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, bool, error) {
	if c == nil || c.cap == 0 {
		st, err := db.PrepareContext(ctx, query)
		return st, false, err
	}
	c.mu.Lock()
	if ele, ok := c.m[query]; ok {
		c.ll.MoveToFront(ele)
		atomic.AddUint64(&c.hits, 1)
		st := ele.Value.(*stmtEntry).stmt
		c.mu.Unlock()
		return st, true, nil
	}
	c.mu.Unlock()
	// prepare outside the lock to avoid blocking
	st, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.m[query]; ok {
		// someone else prepared it meanwhile; keep theirs
		_ = st.Close()
		c.ll.MoveToFront(ele)
		atomic.AddUint64(&c.hits, 1)
		return ele.Value.(*stmtEntry).stmt, true, nil
	}
	atomic.AddUint64(&c.misses, 1)
	ele := c.ll.PushFront(&stmtEntry{key: query, stmt: st})
	c.m[query] = ele
	if c.ll.Len() > c.cap {
		c.evictLRU()
	}
	return st, true, nil
}

func (c *stmtCache) evictLRU() {
	back := c.ll.Back()
	if back == nil {
		return
	}
	c.ll.Remove(back)
	e := back.Value.(*stmtEntry)
	delete(c.m, e.key)
	_ = e.stmt.Close()
}

func (c *stmtCache) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for e := c.ll.Front(); e != nil; e = e.Next() {
		_ = e.Value.(*stmtEntry).stmt.Close()
	}
	c.ll.Init()
	c.m = make(map[string]*list.Element)
}
