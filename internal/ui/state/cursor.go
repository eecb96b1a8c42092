package state

// MoveCursorUp moves the cursor one item up, stopping at the first item.
func (l *Level) MoveCursorUp() bool {
	return l.moveCursorBy(-1)
}

// MoveCursorDown moves the cursor one item down, stopping at the last item.
func (l *Level) MoveCursorDown() bool {
	return l.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	return l.moveCursorBy(-len(l.Items))
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	return l.moveCursorBy(len(l.Items))
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *Level) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = min(max(l.Cursor+delta, 0), len(l.Items)-1)
	return l.Cursor != old
}

func (l *Level) pageSize(maxVisible int) int {
	total := len(l.Items)
	if maxVisible <= 0 || maxVisible > total {
		return total
	}
	return maxVisible
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-maxVisible, 0)
	l.ViewportOffset = min(max(l.ViewportOffset, 0), maxOffset)
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if l.Cursor > l.ViewportOffset+maxVisible-1 {
		l.ViewportOffset = min(l.Cursor-maxVisible+1, maxOffset)
	}
}

// Visible returns the window of items starting at the viewport offset.
func (l *Level) Visible(maxVisible int) []Item {
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items
	}
	l.EnsureCursorVisible(maxVisible)
	return l.Items[l.ViewportOffset : l.ViewportOffset+maxVisible]
}
