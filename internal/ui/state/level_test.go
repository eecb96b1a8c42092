package state

import (
	"reflect"
	"testing"
)

func disks(ids ...string) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id + " - QEMU HARDDISK"}
	}
	return items
}

func TestNewLevelStartsOnCurrent(t *testing.T) {
	l := NewLevel("disk", "Install LiLo on", disks("sda", "sdb", "sdc"), "sdb")
	if l.Cursor != 1 {
		t.Fatalf("expected cursor on current item, got %d", l.Cursor)
	}
	if !l.IsCurrent("sdb") || l.IsCurrent("sda") || l.IsCurrent("") {
		t.Fatalf("unexpected current marker")
	}

	l = NewLevel("disk", "Install LiLo on", disks("sda", "sdb"), "missing")
	if l.Cursor != 0 {
		t.Fatalf("expected cursor on first item, got %d", l.Cursor)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	l := NewLevel("disk", "", disks("a", "b", "c"), "")
	if l.MoveCursorUp() {
		t.Fatalf("expected no movement above first item")
	}
	if !l.MoveCursorDown() || l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if l.MoveCursorDown() {
		t.Fatalf("expected no movement past last item")
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := NewLevel("disk", "", nil, "")
	if empty.MoveCursorDown() || empty.Cursor != 0 {
		t.Fatalf("expected empty level to stay at 0")
	}
	if _, ok := empty.Selected(); ok {
		t.Fatalf("expected no selection in empty level")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := NewLevel("disk", "", disks("a", "b", "c", "d", "e"), "")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := NewLevel("disk", "", disks("a", "b", "c", "d", "e"), "")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	if got := l.Visible(2); len(got) != 2 || got[1].ID != "e" {
		t.Fatalf("unexpected visible window %#v", got)
	}

	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}

	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	l := NewLevel("part", "", []Item{
		{ID: "sda1", Label: "sda1 - ext4 - Salix"},
		{ID: "sda5", Label: "sda5 - xfs - Arch"},
		{ID: "sdb1", Label: "sdb1 - ntfs - Windows"},
	}, "sdb1")
	if l.Cursor != 2 {
		t.Fatalf("expected cursor on current, got %d", l.Cursor)
	}

	l.SetFilter("arch")
	if len(l.Items) != 1 || l.Items[0].ID != "sda5" {
		t.Fatalf("expected only sda5, got %#v", l.Items)
	}
	if item, ok := l.Selected(); !ok || item.ID != "sda5" {
		t.Fatalf("expected sda5 selected, got %#v", item)
	}

	l.SetFilter("")
	if len(l.Items) != 3 || l.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d of %d", l.Cursor, len(l.Items))
	}
	if l.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", l.LastCursor)
	}

	l.SetFilter("zzzz")
	if len(l.Items) != 0 || l.Cursor != 0 {
		t.Fatalf("expected empty result, got %#v", l.Items)
	}
}

func TestFilterItemsAndClone(t *testing.T) {
	items := []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	filtered := FilterItems(items, "alp")
	if !reflect.DeepEqual(filtered, []Item{{ID: "1", Label: "Alpha"}}) {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	filtered = FilterItems(items, "ta")
	if len(filtered) != 1 || filtered[0].Label != "Beta" {
		t.Fatalf("expected match for Beta, got %#v", filtered)
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}

	clone := CloneItems(items)
	clone[0].Label = "changed"
	if items[0].Label != "Alpha" {
		t.Fatal("expected original slice to remain unchanged")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{ID: "sda", Label: "First"},
		{ID: "sdb", Label: "Second"},
		{ID: "nvme0n1", Label: "Third"},
	}
	if idx := BestMatchIndex(items, "Second"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "nvme"); idx != 2 {
		t.Fatalf("expected id prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected label prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}
