package ui

import (
	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) startLabelEdit(entry bootentry.Entry) tea.Cmd {
	before := m.cfg.Snapshot()
	m.editing = entry.Device()
	m.editOriginal = entry.Label
	m.editBefore = &before
	m.labelInput.SetValue(entry.Label)
	m.labelInput.CursorEnd()
	m.mode = ModeLabelEdit
	events.Entry.EditStart(entry.Device(), entry.Label)
	return m.labelInput.Focus()
}

// handleLabelForm feeds key presses to the label input. Every change is
// applied to the entry straight away; esc puts the old label back.
func (m *Model) handleLabelForm(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.finishLabelEdit(false)
		return true, m.OnQuitRequested()
	case key.Matches(msg, m.keys.Select):
		m.finishLabelEdit(true)
		return true, nil
	case key.Matches(msg, m.keys.Cancel):
		m.finishLabelEdit(false)
		return true, nil
	}
	before := m.labelInput.Value()
	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	if value := m.labelInput.Value(); value != before {
		m.OnLabelEdited(m.editing, value)
	}
	return true, cmd
}

func (m *Model) finishLabelEdit(keep bool) {
	device := m.editing
	label := m.labelInput.Value()
	if !keep {
		label = m.editOriginal
		if err := m.cfg.Entries().Relabel(device, label); err != nil {
			m.ignoreMissing(device, err)
		}
	} else if label != m.editOriginal && m.editBefore != nil {
		m.lastEdit = m.editBefore
	}
	events.Entry.EditEnd(device, label, keep)
	m.labelInput.Blur()
	m.labelInput.SetValue("")
	m.mode = ModeForm
	m.editing = ""
	m.editOriginal = ""
	m.editBefore = nil
}
