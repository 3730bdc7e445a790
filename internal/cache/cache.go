// Package cache holds one day's classified events per (city, date) key in a
// size-bounded LRU with a validity window. It is the only shared mutable
// state in the pricing engine.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/harriot/experience-engine/internal/clock"
	"github.com/harriot/experience-engine/internal/domain"
)

type Cache struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	clk   clock.Clock
	ll    *list.List               // most-recent at front
	items map[string]*list.Element // key -> element
}

type entry struct {
	key    string
	events []domain.ClassifiedEvent
	exp    time.Time
}

func New(maxEntries int, ttl time.Duration, clk clock.Clock) *Cache {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Cache{
		cap:   maxEntries,
		ttl:   ttl,
		clk:   clk,
		ll:    list.New(),
		items: make(map[string]*list.Element, maxEntries),
	}
}

// Key builds the canonical cache key for a city and calendar day.
func Key(city string, day time.Time) string {
	return city + "::" + day.Format("2006-01-02")
}

// GetOrCompute returns the cached value for key, or runs compute and stores
// its result. The boolean reports a hit. Compute runs outside the lock, so
// two concurrent misses for the same key may both compute; the later store
// wins wholesale. A compute error is returned without storing anything.
func (c *Cache) GetOrCompute(key string, compute func() ([]domain.ClassifiedEvent, error)) ([]domain.ClassifiedEvent, bool, error) {
	if events, ok := c.get(key); ok {
		return events, true, nil
	}
	events, err := compute()
	if err != nil {
		return nil, false, err
	}
	c.put(key, events)
	return events, false, nil
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *Cache) get(key string) ([]domain.ClassifiedEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	en := el.Value.(entry)
	if c.clk.Now().Before(en.exp) {
		c.ll.MoveToFront(el)
		return en.events, true
	}
	// expired
	c.ll.Remove(el)
	delete(c.items, key)
	return nil, false
}

func (c *Cache) put(key string, events []domain.ClassifiedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clk.Now()
	if el, ok := c.items[key]; ok {
		el.Value = entry{key: key, events: events, exp: now.Add(c.ttl)}
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(entry{key: key, events: events, exp: now.Add(c.ttl)})
	c.items[key] = el
	for c.ll.Len() > c.cap {
		t := c.ll.Back()
		if t == nil {
			break
		}
		old := t.Value.(entry)
		c.ll.Remove(t)
		delete(c.items, old.key)
	}
	// sweep expired entries off the tail
	for {
		t := c.ll.Back()
		if t == nil {
			break
		}
		if now.Before(t.Value.(entry).exp) {
			break
		}
		delete(c.items, t.Value.(entry).key)
		c.ll.Remove(t)
	}
}
