package ui

import (
	"errors"

	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/atomicstack/bootsetup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// handleCommitResultMsg ends the session after a successful install. A failed
// install keeps the configuration so the user can fix it and retry, unless a
// quit was requested while it ran.
func (m *Model) handleCommitResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if m.pendingID != "" && result.ID != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.setError(result.Err)
		var failure *setup.WriterFailure
		var verr *setup.ValidationError
		switch {
		case errors.As(result.Err, &failure):
			events.Commit.Failed(failure.Backend.String(), failure.Err)
			if !m.quitAfterCommit {
				m.openDialog("Installation failed", result.Err.Error(), true)
			}
		case errors.As(result.Err, &verr):
			events.Commit.Rejected(verr.Violations)
		}
		if m.quitAfterCommit {
			return m.quit("user")
		}
		return nil
	}
	snap := result.Snapshot
	m.committed = &snap
	events.Commit.Done(snap.Backend.String(), snapshotTarget(snap))
	return m.quit("installed")
}
