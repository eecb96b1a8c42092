// Package state holds the cursor, filter and viewport of the target picker.
package state

// Level is one list of choices, such as the disks LiLo can be installed to.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	Current        string
	ViewportOffset int
}

// NewLevel builds a level over items with the cursor on current, the id of
// the choice already in effect, or on the first item.
func NewLevel(id, title string, items []Item, current string) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Current:    current,
	}
	l.UpdateItems(items)
	if idx := l.IndexOf(current); idx >= 0 {
		l.Cursor = idx
	}
	return l
}

// IndexOf returns the index of the visible item with id, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the choices and reapplies the filter.
func (l *Level) UpdateItems(items []Item) {
	l.Full = CloneItems(items)
	l.applyFilter()
	if l.ViewportOffset < 0 || l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}
