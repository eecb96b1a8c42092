package ui

import (
	"fmt"

	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/atomicstack/bootsetup/internal/setup"
	uistate "github.com/atomicstack/bootsetup/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pickerDisks      = "disk"
	pickerPartitions = "partition"
)

// openPicker lists the targets the active bootloader can be installed to:
// disks for LiLo, partitions for Grub2.
func (m *Model) openPicker() tea.Cmd {
	snap := m.cfg.Catalog()
	var (
		id    string
		title string
		items []uistate.Item
	)
	switch m.cfg.Backend() {
	case setup.Grub2Backend:
		id, title = pickerPartitions, "Install Grub2 files on"
		for _, p := range snap.Partitions {
			items = append(items, uistate.Item{ID: p.Device, Label: p.Summary()})
		}
	default:
		id, title = pickerDisks, "Install LiLo on the MBR of"
		for _, d := range snap.Disks {
			items = append(items, uistate.Item{ID: d.ID, Label: d.Description()})
		}
	}
	if len(items) == 0 {
		m.setError(fmt.Errorf("no %ss found", id))
		return nil
	}
	m.picker = uistate.NewLevel(id, title, items, m.cfg.Target())
	m.pickerInput.SetValue("")
	m.mode = ModePicker
	events.Picker.Open(id, len(items))
	return m.pickerInput.Focus()
}

func (m *Model) closePicker(chosen string) {
	if m.picker != nil {
		events.Picker.Close(m.picker.ID, chosen)
	}
	m.picker = nil
	m.pickerInput.Blur()
	m.pickerInput.SetValue("")
	m.mode = ModeForm
}

// handlePicker moves the picker cursor, filters the choices as the user
// types and hands the chosen id to OnTargetChosen.
func (m *Model) handlePicker(msg tea.KeyMsg) (bool, tea.Cmd) {
	l := m.picker
	if l == nil {
		m.mode = ModeForm
		return false, nil
	}
	rows := m.pickerRows()
	moved := false
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.closePicker("")
		return true, m.OnQuitRequested()
	case key.Matches(msg, m.keys.Cancel):
		m.closePicker("")
		return true, nil
	case key.Matches(msg, m.keys.Select):
		item, ok := l.Selected()
		if !ok {
			return true, nil
		}
		m.closePicker(item.ID)
		return true, m.OnTargetChosen(item.ID)
	case key.Matches(msg, m.keys.Up):
		moved = l.MoveCursorUp()
	case key.Matches(msg, m.keys.Down):
		moved = l.MoveCursorDown()
	case key.Matches(msg, m.keys.PageUp):
		moved = l.MoveCursorPageUp(rows)
	case key.Matches(msg, m.keys.PageDown):
		moved = l.MoveCursorPageDown(rows)
	case key.Matches(msg, m.keys.Home):
		moved = l.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		moved = l.MoveCursorEnd()
	default:
		before := m.pickerInput.Value()
		var cmd tea.Cmd
		m.pickerInput, cmd = m.pickerInput.Update(msg)
		if value := m.pickerInput.Value(); value != before {
			l.SetFilter(value)
			l.EnsureCursorVisible(rows)
			events.Picker.Filter(l.ID, value, len(l.Items))
		}
		return true, cmd
	}
	if moved {
		l.EnsureCursorVisible(rows)
		events.Picker.Cursor(l.ID, l.Cursor)
	}
	return true, nil
}

// pickerRows is the number of choices that fit on screen, or -1 when the
// height is unknown.
func (m *Model) pickerRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // title, blank, blank, filter prompt
	if m.errMsg != "" {
		used++
	}
	return max(m.height-used, 1)
}
