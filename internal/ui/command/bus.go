package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/atomicstack/bootsetup/internal/setup"
	tea "github.com/charmbracelet/bubbletea"
)

// Committer installs a configuration snapshot. *commit.Gateway implements it.
type Committer interface {
	CommitSnapshot(ctx context.Context, snap setup.Snapshot) error
}

// Request encapsulates a commit invocation.
type Request struct {
	ID       string
	Label    string
	Snapshot setup.Snapshot
}

// Result is delivered to the model once the writer returns.
type Result struct {
	ID       string
	Label    string
	Snapshot setup.Snapshot
	Err      error
}

// ErrNoCommitter is reported when the bus has nothing to commit through.
var ErrNoCommitter = errors.New("no bootloader writer configured")

// Bus coordinates the execution of commits outside the event loop.
type Bus struct {
	ctx       context.Context
	committer Committer
}

// New initialises a command bus instance.
func New(ctx context.Context, committer Committer) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, committer: committer}
}

// Execute wraps a commit into a Bubble Tea command while emitting trace logs.
// The snapshot is the only state the command touches.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		res := Result{ID: req.ID, Label: req.Label, Snapshot: req.Snapshot}
		if b == nil || b.committer == nil {
			events.Command.Skip(req.ID, req.Label)
			res.Err = ErrNoCommitter
			return res
		}
		res.Err = b.committer.CommitSnapshot(b.ctx, req.Snapshot)
		events.Command.Result(req.ID, req.Label, resultKind(res.Err))
		return res
	}
}

func resultKind(err error) string {
	if err == nil {
		return "ok"
	}
	return fmt.Sprintf("%T", err)
}
