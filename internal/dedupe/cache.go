// ABOUTME: Thread-safe TTL cache for suppressing duplicate transport updates
// ABOUTME: The front-end checks every inbound update ID so redelivered events are processed once

package dedupe

import (
	"container/list"
	"sync"
	"time"
)

// entry pairs a key's arrival time with its position in insertion order.
type entry struct {
	at      time.Time
	element *list.Element
}

// Cache tracks recently seen update keys. It is bounded both by a TTL and a
// maximum size; the oldest key is evicted when the cache is full.
type Cache struct {
	mu      sync.Mutex
	seen    map[string]*entry
	order   *list.List // keys in arrival order, oldest at front
	ttl     time.Duration
	maxSize int
	done    chan struct{}
	closed  bool
}

// New creates a dedupe cache. A background goroutine sweeps expired keys.
func New(ttl time.Duration, maxSize int) *Cache {
	c := &Cache{
		seen:    make(map[string]*entry),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Seen atomically checks whether key arrived within the TTL and records it
// if not. Returns true for a duplicate that should be dropped.
func (c *Cache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.seen[key]; ok && time.Since(e.at) < c.ttl {
		return true
	}

	c.record(key)
	return false
}

// record inserts or refreshes a key. Must be called with mu held.
func (c *Cache) record(key string) {
	now := time.Now()

	if e, ok := c.seen[key]; ok {
		e.at = now
		c.order.MoveToBack(e.element)
		return
	}

	if len(c.seen) >= c.maxSize {
		if front := c.order.Front(); front != nil {
			oldest, _ := front.Value.(string)
			c.order.Remove(front)
			delete(c.seen, oldest)
		}
	}

	c.seen[key] = &entry{at: now, element: c.order.PushBack(key)}
}

// sweep periodically drops expired keys so the map does not pin memory for
// updates that will never be redelivered.
func (c *Cache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, e := range c.seen {
				if now.Sub(e.at) > c.ttl {
					c.order.Remove(e.element)
					delete(c.seen, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

// Close stops the background sweep. Safe to call more than once.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.done)
		c.closed = true
	}
}
