package state

// Selected returns the item under the cursor.
func (l *Level) Selected() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IsCurrent reports whether id is the choice already in effect.
func (l *Level) IsCurrent(id string) bool {
	return id != "" && id == l.Current
}
