package state

// Item is one choice offered by a picker level.
type Item struct {
	ID    string
	Label string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
