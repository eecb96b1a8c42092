package command

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/bootsetup/internal/setup"
)

type recordingCommitter struct {
	got []setup.Snapshot
	err error
}

func (r *recordingCommitter) CommitSnapshot(_ context.Context, snap setup.Snapshot) error {
	r.got = append(r.got, snap)
	return r.err
}

func TestExecuteDeliversResult(t *testing.T) {
	c := &recordingCommitter{}
	snap := setup.Snapshot{Backend: setup.Grub2Backend, Partition: "sda5"}
	cmd := New(context.Background(), c).Execute(Request{ID: "commit", Label: "Install", Snapshot: snap})
	if len(c.got) != 0 {
		t.Fatalf("commit ran before the command was executed")
	}

	res, ok := cmd().(Result)
	if !ok {
		t.Fatalf("expected Result message")
	}
	if res.Err != nil || res.ID != "commit" || res.Snapshot.Partition != "sda5" {
		t.Fatalf("unexpected result %#v", res)
	}
	if len(c.got) != 1 || c.got[0].Partition != "sda5" {
		t.Fatalf("expected a single commit of the snapshot, got %#v", c.got)
	}
}

func TestExecuteReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	res := New(nil, &recordingCommitter{err: boom}).Execute(Request{ID: "commit"})().(Result)
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected boom, got %v", res.Err)
	}

	res = New(context.Background(), nil).Execute(Request{ID: "commit"})().(Result)
	if !errors.Is(res.Err, ErrNoCommitter) {
		t.Fatalf("expected ErrNoCommitter, got %v", res.Err)
	}
}
