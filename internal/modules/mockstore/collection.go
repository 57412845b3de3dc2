package mockstore

import (
	"slices"
	"sync"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
)

// Collection is an ordered in-memory table of one entity kind. Identifiers are
// assigned from a per-collection counter and never reused.
type Collection[T any, PT interface {
	*T
	model.Record
}] struct {
	mu     sync.RWMutex
	items  []T
	nextID uint
	now    func() time.Time
}

func newCollection[T any, PT interface {
	*T
	model.Record
}](now func() time.Time) *Collection[T, PT] {
	return &Collection[T, PT]{now: now}
}

// List returns the items accepted by match in insertion order. A nil match
// returns the whole collection.
func (c *Collection[T, PT]) List(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if match == nil || match(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T, PT]) Get(id uint) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Create stores v under a fresh identifier and stamps both timestamps.
func (c *Collection[T, PT]) Create(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	p := PT(&v)
	p.SetID(c.nextID)
	p.Stamp(c.now(), true)
	c.items = append(c.items, v)
	return v
}

// seed stores v keeping its timestamps. A zero id is assigned from the counter.
func (c *Collection[T, PT]) seed(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := PT(&v)
	if p.GetID() == 0 {
		c.nextID++
		p.SetID(c.nextID)
	} else if p.GetID() > c.nextID {
		c.nextID = p.GetID()
	}
	c.items = append(c.items, v)
	return v
}

// Update merges apply onto the stored item and stamps UpdatedAt.
func (c *Collection[T, PT]) Update(id uint, apply func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	it := c.items[i]
	if apply != nil {
		apply(&it)
	}
	p := PT(&it)
	p.SetID(id)
	p.Stamp(c.now(), false)
	c.items[i] = it
	return it, true
}

// UpdateWhere applies apply to every item accepted by match and returns how
// many were touched.
func (c *Collection[T, PT]) UpdateWhere(match func(T) bool, apply func(*T)) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for i := range c.items {
		if match != nil && !match(c.items[i]) {
			continue
		}
		id := PT(&c.items[i]).GetID()
		apply(&c.items[i])
		PT(&c.items[i]).SetID(id)
		PT(&c.items[i]).Stamp(now, false)
		n++
	}
	return n
}

func (c *Collection[T, PT]) Delete(id uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// DeleteWhere removes every item accepted by match and returns how many were
// removed.
func (c *Collection[T, PT]) DeleteWhere(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, match)
	return before - len(c.items)
}

func (c *Collection[T, PT]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T, PT]) indexOf(id uint) int {
	for i := range c.items {
		if PT(&c.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}
