// Package todolist holds the in-memory todo collection and its
// JSON and CSV encodings.
package todolist

import (
	"math"
	"sort"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// Normalize returns the lookup key for a description.
func Normalize(description string) string {
	return strings.ToLower(description)
}

// Collection stores items keyed by normalized description.
// keys mirrors items by ID so id lookups don't scan; both maps
// change together on every insert and remove.
type Collection struct {
	items  map[string]model.Item
	keys   map[uint32]string
	nextID uint32
}

// New returns an empty collection whose first id is 0.
func New() *Collection {
	return &Collection{
		items: make(map[string]model.Item),
		keys:  make(map[uint32]string),
	}
}

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// NextID returns the id the next successful Insert will assign.
func (c *Collection) NextID() uint32 { return c.nextID }

// Full reports whether every id has been handed out. The counter never
// wraps, so a full collection refuses further inserts.
func (c *Collection) Full() bool { return c.nextID == math.MaxUint32 }

// Insert adds a pending item for description. It returns false, and
// changes nothing, when an item with the same normalized description
// already exists or the collection is Full.
func (c *Collection) Insert(description string) bool {
	key := Normalize(description)
	if _, exists := c.items[key]; exists {
		return false
	}
	if c.Full() {
		return false
	}
	c.put(key, model.NewItem(c.nextID, key))
	c.nextID++
	return true
}

// FindByDescription looks an item up by description, ignoring case.
func (c *Collection) FindByDescription(description string) (model.Item, bool) {
	it, ok := c.items[Normalize(description)]
	return it, ok
}

// FindByID looks an item up by id.
func (c *Collection) FindByID(id uint32) (model.Item, bool) {
	key, ok := c.keys[id]
	if !ok {
		return model.Item{}, false
	}
	return c.items[key], true
}

// UpdateByID toggles the item's done flag and returns the new value.
func (c *Collection) UpdateByID(id uint32) (done bool, ok bool) {
	key, ok := c.keys[id]
	if !ok {
		return false, false
	}
	return c.toggle(key)
}

// UpdateByDescription toggles the item's done flag and returns the new value.
func (c *Collection) UpdateByDescription(description string) (done bool, ok bool) {
	return c.toggle(Normalize(description))
}

// RemoveByDescription deletes the item and returns it.
func (c *Collection) RemoveByDescription(description string) (model.Item, bool) {
	return c.remove(Normalize(description))
}

// RemoveByID deletes the item with id and returns it.
func (c *Collection) RemoveByID(id uint32) (model.Item, bool) {
	key, ok := c.keys[id]
	if !ok {
		return model.Item{}, false
	}
	return c.remove(key)
}

// Items returns a copy of every item ordered by id.
func (c *Collection) Items() []model.Item {
	out := make([]model.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stats counts done and pending items.
func (c *Collection) Stats() (done, pending int) {
	for _, it := range c.items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func (c *Collection) put(key string, it model.Item) {
	c.items[key] = it
	c.keys[it.ID] = key
}

func (c *Collection) toggle(key string) (bool, bool) {
	it, ok := c.items[key]
	if !ok {
		return false, false
	}
	done := it.Toggle()
	c.items[key] = it
	return done, true
}

func (c *Collection) remove(key string) (model.Item, bool) {
	it, ok := c.items[key]
	if !ok {
		return model.Item{}, false
	}
	delete(c.items, key)
	delete(c.keys, it.ID)
	return it, true
}
