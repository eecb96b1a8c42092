package ui

import (
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes key presses while the form or a dialog is showing.
// Label editing and the picker consume their keys before this runs.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.loading {
		return m.handleLoadingKey(keyMsg)
	}
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return m.OnQuitRequested()
	}
	if m.mode == ModeDialog {
		return m.handleDialogKey(keyMsg)
	}
	m.clearInfo()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.OnQuitRequested()
	case key.Matches(keyMsg, m.keys.Next):
		m.cycleFocus(1)
		return nil
	case key.Matches(keyMsg, m.keys.Prev):
		m.cycleFocus(-1)
		return nil
	case key.Matches(keyMsg, m.keys.Install):
		return m.OnCommitRequested()
	case key.Matches(keyMsg, m.keys.Revert):
		return m.withPrompt(m.revertLastEdit)
	case key.Matches(keyMsg, m.keys.Reset):
		return m.withPrompt(m.resetEntries)
	case key.Matches(keyMsg, m.keys.Help):
		return m.withPrompt(m.helpDialog)
	case key.Matches(keyMsg, m.keys.About):
		return m.withPrompt(m.aboutDialog)
	}

	switch m.focus {
	case FieldBackend:
		return m.handleBackendKey(keyMsg)
	case FieldTarget:
		if key.Matches(keyMsg, m.keys.Select) {
			return m.openPicker()
		}
	case FieldEntries:
		return m.handleEntriesKey(keyMsg)
	case FieldInstall:
		if key.Matches(keyMsg, m.keys.Select) {
			return m.OnCommitRequested()
		}
	}
	return nil
}

func (m *Model) handleBackendKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.OnBackendToggled(setup.LiLoBackend)
	case key.Matches(msg, m.keys.Right):
		return m.OnBackendToggled(setup.Grub2Backend)
	case key.Matches(msg, m.keys.Toggle):
		next := setup.Grub2Backend
		if m.cfg.Backend() == setup.Grub2Backend {
			next = setup.LiLoBackend
		}
		return m.OnBackendToggled(next)
	}
	return nil
}

func (m *Model) handleEntriesKey(msg tea.KeyMsg) tea.Cmd {
	entry, ok := m.currentEntry()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.row = max(m.row-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.row = min(m.row+1, m.cfg.Entries().Len()-1)
	case key.Matches(msg, m.keys.MoveUp):
		return m.OnReorderRequested(entry.Device(), Up)
	case key.Matches(msg, m.keys.MoveDown):
		return m.OnReorderRequested(entry.Device(), Down)
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Edit):
		return m.startLabelEdit(entry)
	}
	return nil
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.closeDialog()
	}
	return nil
}

// handleLoadingKey defers a quit until the running install returns. A second
// ctrl+c quits at once.
func (m *Model) handleLoadingKey(keyMsg tea.KeyMsg) tea.Cmd {
	if !key.Matches(keyMsg, m.keys.Quit) {
		return nil
	}
	if m.quitAfterCommit && key.Matches(keyMsg, m.keys.ForceQuit) {
		return m.quit("forced")
	}
	m.quitAfterCommit = true
	m.setInfo("Quitting once the installation finishes (ctrl+c again to force)")
	return nil
}
