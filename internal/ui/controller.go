package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/commit"
	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/atomicstack/bootsetup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// Direction is the way an entry moves in the boot menu.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

const commitID = "commit"

// OnBackendToggled makes b the active bootloader. Both variants keep their
// targets and the boot entries are untouched.
func (m *Model) OnBackendToggled(b setup.Backend) tea.Cmd {
	before := m.cfg.Snapshot()
	changed := m.cfg.SetBackend(b)
	events.Form.Backend(m.cfg.Backend().String(), changed)
	if !changed {
		return nil
	}
	m.remember(before)
	m.errMsg = ""
	m.normalizeFocus()
	return nil
}

// OnTargetChosen sets the install target of the active bootloader. An id the
// catalog does not offer clears the target and is reported in a dialog.
func (m *Model) OnTargetChosen(id string) tea.Cmd {
	before := m.cfg.Snapshot()
	err := m.cfg.SetTarget(id)
	events.Form.Target(m.cfg.Backend().String(), m.cfg.Target())
	if before.Disk != m.cfg.LiLo().Disk || before.Partition != m.cfg.Grub2().Partition {
		m.remember(before)
	}
	if err != nil {
		m.setError(err)
		var terr *setup.InvalidTargetError
		if errors.As(err, &terr) {
			m.openDialog("Invalid target", err.Error(), true)
		}
		return nil
	}
	m.errMsg = ""
	return nil
}

// OnLabelEdited replaces the label of the entry for device. Labels are only
// checked at commit time; an unknown device is logged and ignored.
func (m *Model) OnLabelEdited(device, text string) tea.Cmd {
	var before setup.Snapshot
	if m.mode != ModeLabelEdit {
		before = m.cfg.Snapshot()
	}
	if err := m.cfg.Entries().Relabel(device, text); err != nil {
		m.ignoreMissing(device, err)
		return nil
	}
	if m.mode != ModeLabelEdit {
		m.remember(before)
	}
	events.Entry.Relabel(device, text)
	return nil
}

// OnReorderRequested moves the entry for device one position. The row cursor
// follows the entry it was on.
func (m *Model) OnReorderRequested(device string, dir Direction) tea.Cmd {
	entries := m.cfg.Entries()
	before := m.cfg.Snapshot()
	from, _ := entries.Position(device)
	var err error
	switch dir {
	case Up:
		err = entries.MoveUp(device)
	case Down:
		err = entries.MoveDown(device)
	}
	if err != nil {
		m.ignoreMissing(device, err)
		return nil
	}
	to, _ := entries.Position(device)
	events.Entry.Move(device, dir.String(), to)
	if to != from {
		m.remember(before)
		m.row = to
	}
	return nil
}

// OnCommitRequested validates the current configuration and, when it is
// complete, hands a snapshot to the command bus.
func (m *Model) OnCommitRequested() tea.Cmd {
	if m.loading {
		return nil
	}
	snap := m.cfg.Snapshot()
	if err := commit.Validate(snap); err != nil {
		var verr *setup.ValidationError
		if errors.As(err, &verr) {
			events.Commit.Rejected(verr.Violations)
		}
		m.setError(err)
		return nil
	}
	if m.bus == nil {
		m.setError(command.ErrNoCommitter)
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	m.loading = true
	m.pendingID = commitID
	m.pendingLabel = fmt.Sprintf("Installing %s on %s…", snap.Backend, snapshotTarget(snap))
	events.Commit.Begin(snap.Backend.String(), snapshotTarget(snap), len(snap.Entries))
	return m.bus.Execute(command.Request{ID: commitID, Label: m.pendingLabel, Snapshot: snap})
}

// OnQuitRequested ends the session without installing anything.
func (m *Model) OnQuitRequested() tea.Cmd {
	return m.quit("user")
}

func (m *Model) quit(reason string) tea.Cmd {
	if !m.quitting {
		m.quitting = true
		if m.closer != nil {
			if err := m.closer.Close(); err != nil {
				logging.Error(err)
			}
		}
		events.App.Quit(reason)
	}
	return tea.Quit
}

func (m *Model) revertLastEdit() promptResult {
	if m.lastEdit == nil {
		return promptResult{Info: "Nothing to revert"}
	}
	m.cfg.Restore(*m.lastEdit)
	m.lastEdit = nil
	m.clampRow()
	m.normalizeFocus()
	events.Form.Revert("last edit")
	return promptResult{Info: "Reverted last edit"}
}

func (m *Model) resetEntries() promptResult {
	before := m.cfg.Snapshot()
	if err := m.cfg.ResetEntries(); err != nil {
		return promptResult{Err: err}
	}
	m.remember(before)
	m.row = 0
	events.Form.Revert("custom config")
	return promptResult{Info: "Boot entries restored from the detected systems"}
}

// remember records the state before an edit so ctrl+z can return to it.
func (m *Model) remember(before setup.Snapshot) {
	m.lastEdit = &before
}

func (m *Model) ignoreMissing(device string, err error) {
	var nf *bootentry.NotFoundError
	if errors.As(err, &nf) {
		events.Entry.NotFound(device)
		logging.Warnf("ignoring edit of unknown boot entry %s", device)
		return
	}
	m.setError(err)
}

func (m *Model) setError(err error) {
	m.errMsg = err.Error()
	m.forceClearInfo()
	events.Form.Error(err)
}

func (m *Model) fields() []Field {
	if m.cfg.Backend() == setup.LiLoBackend {
		return []Field{FieldBackend, FieldTarget, FieldEntries, FieldInstall}
	}
	return []Field{FieldBackend, FieldTarget, FieldInstall}
}

func (m *Model) cycleFocus(delta int) {
	fields := m.fields()
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	m.focus = fields[idx]
	events.Form.Focus(m.focus.String())
}

// normalizeFocus moves focus off the entries table once it is hidden.
func (m *Model) normalizeFocus() {
	if m.focus == FieldEntries && m.cfg.Backend() != setup.LiLoBackend {
		m.focus = FieldTarget
		events.Form.Focus(m.focus.String())
	}
}

func (m *Model) clampRow() {
	n := m.cfg.Entries().Len()
	m.row = min(max(m.row, 0), max(n-1, 0))
}

func (m *Model) currentEntry() (bootentry.Entry, bool) {
	entries := m.cfg.Entries().Entries()
	if m.row < 0 || m.row >= len(entries) {
		return bootentry.Entry{}, false
	}
	return entries[m.row], true
}

func snapshotTarget(snap setup.Snapshot) string {
	if snap.Backend == setup.Grub2Backend {
		return snap.Partition
	}
	return snap.Disk
}
