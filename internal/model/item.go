package model

// Item is the domain model for a todo entry.
// ID and Description are fixed at creation; only Done changes.
// Items are plain values: assigning one copies it.
type Item struct {
	ID          uint32 `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// NewItem builds a pending item.
func NewItem(id uint32, description string) Item {
	return Item{ID: id, Description: description}
}

// Toggle flips Done and returns the new value.
func (it *Item) Toggle() bool {
	it.Done = !it.Done
	return it.Done
}
