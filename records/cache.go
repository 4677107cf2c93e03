package records

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL 是 Cached 未指定 TTL 时的缓存时长。
const DefaultTTL = 5 * time.Minute

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// ttlCache stores values in-memory with per-entry TTLs.
type ttlCache[V any] struct {
	mu    sync.RWMutex
	now   func() time.Time
	items map[string]cacheEntry[V]
}

func newTTLCache[V any](now func() time.Time) *ttlCache[V] {
	return &ttlCache[V]{now: now, items: make(map[string]cacheEntry[V])}
}

func (c *ttlCache[V]) get(key string) (V, bool) {
	var zero V
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

func (c *ttlCache[V]) set(key string, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = cacheEntry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Cached 为 Source 的查询结果加上 TTL 缓存。只缓存成功的结果，
// 查询失败（包括 ErrNotFound）每次都会回源。
type Cached struct {
	src       Source
	ttl       time.Duration
	orders    *ttlCache[Order]
	suppliers *ttlCache[Supplier]
}

// CacheOption 配置 Cached。
type CacheOption func(*cacheConfig)

type cacheConfig struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL 设置缓存时长；ttl <= 0 表示永不过期。
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *cacheConfig) { c.ttl = ttl }
}

// WithClock 替换时间来源，便于测试过期逻辑。
func WithClock(now func() time.Time) CacheOption {
	return func(c *cacheConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCached 包装 src。
func NewCached(src Source, opts ...CacheOption) *Cached {
	cfg := cacheConfig{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cached{
		src:       src,
		ttl:       cfg.ttl,
		orders:    newTTLCache[Order](cfg.now),
		suppliers: newTTLCache[Supplier](cfg.now),
	}
}

func (c *Cached) Order(ctx context.Context, id string) (Order, error) {
	if o, ok := c.orders.get(id); ok {
		return o, nil
	}
	o, err := c.src.Order(ctx, id)
	if err != nil {
		return Order{}, err
	}
	c.orders.set(id, o, c.ttl)
	return o, nil
}

func (c *Cached) Supplier(ctx context.Context, id string) (Supplier, error) {
	if s, ok := c.suppliers.get(id); ok {
		return s, nil
	}
	s, err := c.src.Supplier(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	c.suppliers.set(id, s, c.ttl)
	return s, nil
}
