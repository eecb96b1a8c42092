package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/atomicstack/bootsetup/internal/testutil"
	"github.com/atomicstack/bootsetup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "bootsetup-ui")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

type recordingCommitter struct {
	got []setup.Snapshot
	err error
}

func (r *recordingCommitter) CommitSnapshot(_ context.Context, snap setup.Snapshot) error {
	r.got = append(r.got, snap)
	return r.err
}

type countingCloser struct {
	calls int
}

func (c *countingCloser) Close() error {
	c.calls++
	return nil
}

func newTestModel(t *testing.T, committer command.Committer) (*Model, *Harness) {
	t.Helper()
	cfg := testutil.NewConfig(t, setup.Defaults{})
	var bus *command.Bus
	if committer != nil {
		bus = command.New(context.Background(), committer)
	}
	m := NewModel(cfg, Options{Bus: bus, Width: 100, Height: 30})
	return m, NewHarness(m)
}

func labels(m *Model) []string {
	var out []string
	for e := range m.Configuration().Entries().All() {
		out = append(out, e.Label)
	}
	return out
}

func devices(m *Model) []string {
	var out []string
	for e := range m.Configuration().Entries().All() {
		out = append(out, e.Device())
	}
	return out
}

func TestTabCyclesFocusAndSkipsEntriesForGrub2(t *testing.T) {
	m, h := newTestModel(t, nil)
	want := []Field{FieldTarget, FieldEntries, FieldInstall, FieldBackend}
	for _, field := range want {
		h.Keys("tab")
		if m.Focus() != field {
			t.Fatalf("expected focus %s, got %s", field, m.Focus())
		}
	}
	h.Keys("shift+tab")
	if m.Focus() != FieldInstall {
		t.Fatalf("expected shift+tab to wrap to install, got %s", m.Focus())
	}

	h.Keys("tab", "right")
	if m.Configuration().Backend() != setup.Grub2Backend {
		t.Fatalf("expected Grub2 active")
	}
	h.Keys("tab", "tab")
	if m.Focus() != FieldInstall {
		t.Fatalf("expected entries to be skipped for Grub2, got %s", m.Focus())
	}
}

func TestBackendToggleKeepsTargetsAndEntries(t *testing.T) {
	m, h := newTestModel(t, nil)
	if err := m.Configuration().Entries().Relabel("sda1", "Salix"); err != nil {
		t.Fatalf("relabel: %v", err)
	}
	h.Keys("space")
	if m.Configuration().Backend() != setup.Grub2Backend || m.Configuration().Target() != "" {
		t.Fatalf("expected Grub2 without a partition, got %s %q", m.Configuration().Backend(), m.Configuration().Target())
	}
	h.Keys("right")
	if m.Configuration().Backend() != setup.Grub2Backend {
		t.Fatalf("expected right to keep Grub2")
	}
	h.Keys("left")
	if m.Configuration().Backend() != setup.LiLoBackend || m.Configuration().Target() != "sda" {
		t.Fatalf("expected LiLo on sda, got %s %q", m.Configuration().Backend(), m.Configuration().Target())
	}
	if got := labels(m)[0]; got != "Salix" {
		t.Fatalf("expected custom label to survive the round trip, got %q", got)
	}
}

func TestTargetPickerFiltersAndChooses(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "enter")
	if m.Mode() != ModePicker {
		t.Fatalf("expected picker, got mode %d", m.Mode())
	}
	view := h.View()
	if !strings.Contains(view, "Install LiLo on the MBR of") || !strings.Contains(view, "sdb - USB DISK") {
		t.Fatalf("expected disk picker, got:\n%s", view)
	}
	h.Type("usb disk")
	if len(m.picker.Items) != 1 || m.picker.Items[0].ID != "sdb" {
		t.Fatalf("expected only sdb to match, got %#v", m.picker.Items)
	}
	h.Keys("enter")
	if m.Mode() != ModeForm || m.Configuration().Target() != "sdb" {
		t.Fatalf("expected sdb chosen, got mode %d target %q", m.Mode(), m.Configuration().Target())
	}
}

func TestTargetPickerCancelKeepsTarget(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "enter", "down", "esc")
	if m.Mode() != ModeForm {
		t.Fatalf("expected form after esc")
	}
	if m.Configuration().Target() != "sda" {
		t.Fatalf("expected target untouched, got %q", m.Configuration().Target())
	}
}

func TestGrub2PickerListsPartitions(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("right", "tab", "enter")
	if m.picker == nil || m.picker.ID != pickerPartitions || len(m.picker.Items) != 4 {
		t.Fatalf("expected partition picker with four items, got %#v", m.picker)
	}
	h.Keys("end", "up", "enter")
	if m.Configuration().Target() != "sda5" {
		t.Fatalf("expected sda5, got %q", m.Configuration().Target())
	}
}

func TestInvalidTargetOpensDialogAndClearsTarget(t *testing.T) {
	m, h := newTestModel(t, nil)
	m.OnTargetChosen("sda1")
	if m.Mode() != ModeDialog {
		t.Fatalf("expected dialog, got mode %d", m.Mode())
	}
	if m.Configuration().Target() != "" {
		t.Fatalf("expected target cleared, got %q", m.Configuration().Target())
	}
	if !strings.Contains(h.View(), "Invalid target") {
		t.Fatalf("expected dialog title in view:\n%s", h.View())
	}
	h.Keys("esc")
	if m.Mode() != ModeForm {
		t.Fatalf("expected esc to close dialog")
	}
	if !strings.Contains(h.View(), "Error:") || !strings.Contains(h.View(), "(none selected)") {
		t.Fatalf("expected error line and empty target:\n%s", h.View())
	}
	h.Keys("ctrl+z")
	if m.Configuration().Target() != "sda" {
		t.Fatalf("expected revert to restore sda, got %q", m.Configuration().Target())
	}
}

func TestLabelEditAppliesKeystrokesAndKeepsOnEnter(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "tab", "down", "e")
	if m.Mode() != ModeLabelEdit || m.editing != "sda2" {
		t.Fatalf("expected editing sda2, got mode %d device %q", m.Mode(), m.editing)
	}
	h.Keys("backspace", "backspace")
	if got := labels(m)[1]; got != "Windows" {
		t.Fatalf("expected live relabel to Windows, got %q", got)
	}
	h.Type("XP")
	h.Keys("enter")
	if m.Mode() != ModeForm {
		t.Fatalf("expected form after enter")
	}
	if got := labels(m)[1]; got != "WindowsXP" {
		t.Fatalf("expected WindowsXP, got %q", got)
	}
	h.Keys("ctrl+z")
	if got := labels(m)[1]; got != "Windows_7" {
		t.Fatalf("expected revert to restore Windows_7, got %q", got)
	}
}

func TestLabelEditEscRestoresLabel(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "tab", "enter")
	h.Type("!!")
	if got := labels(m)[0]; got != "Salix_14!!" {
		t.Fatalf("expected live edit, got %q", got)
	}
	h.Keys("esc")
	if got := labels(m)[0]; got != "Salix_14" {
		t.Fatalf("expected esc to restore label, got %q", got)
	}
	if m.lastEdit != nil {
		t.Fatalf("expected cancelled edit not to be revertible")
	}
}

func TestLabelEditStopsAtMaxLength(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "tab", "enter")
	h.Type("abcdefghijklmnop")
	if got := labels(m)[0]; len([]rune(got)) != 15 {
		t.Fatalf("expected label capped at 15 runes, got %q", got)
	}
}

func TestReorderFollowsEntry(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "tab", "J")
	if got := strings.Join(devices(m), ","); got != "sda2,sda1,sda5" {
		t.Fatalf("unexpected order %s", got)
	}
	if m.row != 1 {
		t.Fatalf("expected row to follow sda1, got %d", m.row)
	}
	h.Keys("shift+down")
	if got := strings.Join(devices(m), ","); got != "sda2,sda5,sda1" {
		t.Fatalf("unexpected order %s", got)
	}
	h.Keys("shift+down")
	if m.row != 2 {
		t.Fatalf("expected row to stay on last entry, got %d", m.row)
	}
	h.Keys("K", "K")
	if got := strings.Join(devices(m), ","); got != "sda1,sda2,sda5" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestUnknownDeviceIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.OnLabelEdited("sdz9", "x")
	m.OnReorderRequested("sdz9", Up)
	if m.errMsg != "" {
		t.Fatalf("expected unknown device to be ignored, got %q", m.errMsg)
	}
	if got := strings.Join(labels(m), ","); got != "Salix_14,Windows_7,Arch_Linux" {
		t.Fatalf("unexpected labels %s", got)
	}
}

func TestResetRestoresCatalogEntries(t *testing.T) {
	m, h := newTestModel(t, nil)
	m.OnLabelEdited("sda5", "Arch")
	m.OnReorderRequested("sda5", Up)
	h.Keys("u")
	if got := strings.Join(labels(m), ","); got != "Salix_14,Windows_7,Arch_Linux" {
		t.Fatalf("unexpected labels after reset %s", got)
	}
	if !strings.Contains(h.View(), "restored") {
		t.Fatalf("expected info message:\n%s", h.View())
	}
	h.Keys("ctrl+z")
	if got := strings.Join(devices(m), ","); got != "sda1,sda5,sda2" {
		t.Fatalf("expected revert to undo the reset, got %s", got)
	}
}

func TestRevertWithoutEditsReportsInfo(t *testing.T) {
	_, h := newTestModel(t, nil)
	h.Keys("ctrl+z")
	if !strings.Contains(h.View(), "Nothing to revert") {
		t.Fatalf("expected info message:\n%s", h.View())
	}
}

func TestCommitInstallsSnapshotAndQuits(t *testing.T) {
	committer := &recordingCommitter{}
	m, h := newTestModel(t, committer)
	h.Keys("i")
	if len(committer.got) != 1 {
		t.Fatalf("expected one commit, got %d", len(committer.got))
	}
	snap := committer.got[0]
	if snap.Backend != setup.LiLoBackend || snap.Disk != "sda" || len(snap.Entries) != 3 {
		t.Fatalf("unexpected snapshot %#v", snap)
	}
	if !h.Quit() || !m.Quitting() {
		t.Fatalf("expected quit after a successful install")
	}
	if got, ok := m.Committed(); !ok || got.Disk != "sda" {
		t.Fatalf("expected committed snapshot, got %#v", got)
	}
}

func TestCommitFromInstallButton(t *testing.T) {
	committer := &recordingCommitter{}
	_, h := newTestModel(t, committer)
	h.Keys("shift+tab", "enter")
	if len(committer.got) != 1 {
		t.Fatalf("expected enter on install to commit")
	}
}

func TestCommitRejectsInvalidConfiguration(t *testing.T) {
	committer := &recordingCommitter{}
	m, h := newTestModel(t, committer)
	m.OnLabelEdited("sda1", "")
	m.OnLabelEdited("sda5", "Windows_7")
	h.Keys("i")
	if len(committer.got) != 0 {
		t.Fatalf("expected no writer call for an invalid configuration")
	}
	if h.Quit() {
		t.Fatalf("expected the form to stay open")
	}
	if !strings.Contains(m.errMsg, "label is empty") || !strings.Contains(m.errMsg, "sda2 and sda5") {
		t.Fatalf("expected every violation reported, got %q", m.errMsg)
	}
}

func TestCommitRejectsGrub2WithoutPartition(t *testing.T) {
	committer := &recordingCommitter{}
	m, h := newTestModel(t, committer)
	h.Keys("right", "i")
	if len(committer.got) != 0 || !strings.Contains(m.errMsg, "no target partition") {
		t.Fatalf("expected missing partition error, got %q", m.errMsg)
	}
}

func TestWriterFailureKeepsFormForRetry(t *testing.T) {
	committer := &recordingCommitter{
		err: &setup.WriterFailure{Backend: setup.LiLoBackend, Err: errors.New("lilo exited with status 1")},
	}
	m, h := newTestModel(t, committer)
	h.Keys("i")
	if h.Quit() {
		t.Fatalf("expected the form to stay open after a failure")
	}
	if m.Mode() != ModeDialog {
		t.Fatalf("expected failure dialog")
	}
	if !strings.Contains(h.View(), "LiLo installation failed: lilo exited with status 1") {
		t.Fatalf("expected writer message verbatim:\n%s", h.View())
	}
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	h.Keys("enter")
	if m.Configuration().Target() != "sda" || m.Configuration().Entries().Len() != 3 {
		t.Fatalf("expected configuration unchanged")
	}

	committer.err = nil
	h.Keys("i")
	if len(committer.got) != 2 || !h.Quit() {
		t.Fatalf("expected retry to install and quit, got %d commits", len(committer.got))
	}
}

func TestCommitWithoutBusReportsError(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("i")
	if m.errMsg != command.ErrNoCommitter.Error() {
		t.Fatalf("expected no writer error, got %q", m.errMsg)
	}
}

func TestInputIgnoredWhileCommitInFlight(t *testing.T) {
	m, h := newTestModel(t, &recordingCommitter{})
	m.loading = true
	h.Keys("right", "tab", "u", "i")
	if m.Configuration().Backend() != setup.LiLoBackend || m.Focus() != FieldBackend {
		t.Fatalf("expected input to be ignored while loading")
	}
}

func TestQuitWaitsForCommitInFlight(t *testing.T) {
	closer := &countingCloser{}
	committer := &recordingCommitter{}
	m := NewModel(testutil.NewConfig(t, setup.Defaults{}), Options{
		Bus:    command.New(context.Background(), committer),
		Closer: closer,
		Width:  100,
		Height: 30,
	})
	h := NewHarness(m)
	cmd := m.OnCommitRequested()
	if cmd == nil || !m.loading {
		t.Fatalf("expected a commit in flight")
	}

	h.Keys("q")
	if h.Quit() || m.Quitting() || closer.calls != 0 {
		t.Fatalf("expected quit to wait for the install, quit=%v closes=%d", h.Quit(), closer.calls)
	}
	if !strings.Contains(h.View(), "Quitting once the installation finishes") {
		t.Fatalf("expected pending quit notice:\n%s", h.View())
	}

	h.Send(cmd())
	if !h.Quit() || closer.calls != 1 {
		t.Fatalf("expected quit after the install returned, quit=%v closes=%d", h.Quit(), closer.calls)
	}
	if _, ok := m.Committed(); !ok {
		t.Fatalf("expected the finished install to be reported")
	}
}

func TestQuitAfterFailedCommitInFlight(t *testing.T) {
	committer := &recordingCommitter{
		err: &setup.WriterFailure{Backend: setup.LiLoBackend, Err: errors.New("lilo exited with status 1")},
	}
	m := NewModel(testutil.NewConfig(t, setup.Defaults{}), Options{
		Bus: command.New(context.Background(), committer),
	})
	h := NewHarness(m)
	cmd := m.OnCommitRequested()
	h.Keys("ctrl+c")
	if h.Quit() {
		t.Fatalf("expected the first ctrl+c to wait for the install")
	}
	h.Send(cmd())
	if !h.Quit() || m.Mode() == ModeDialog {
		t.Fatalf("expected quit without a failure dialog, mode=%v", m.Mode())
	}
	if _, ok := m.Committed(); ok {
		t.Fatalf("expected nothing committed")
	}
}

func TestSecondForceQuitDuringCommit(t *testing.T) {
	closer := &countingCloser{}
	m := NewModel(testutil.NewConfig(t, setup.Defaults{}), Options{Closer: closer})
	h := NewHarness(m)
	m.loading = true
	h.Keys("ctrl+c")
	if h.Quit() {
		t.Fatalf("expected the first ctrl+c to wait")
	}
	h.Keys("ctrl+c")
	if !h.Quit() || closer.calls != 1 {
		t.Fatalf("expected the second ctrl+c to quit, closes=%d", closer.calls)
	}
}

func TestQuitClosesWriterOnce(t *testing.T) {
	closer := &countingCloser{}
	m := NewModel(testutil.NewConfig(t, setup.Defaults{}), Options{Closer: closer})
	h := NewHarness(m)
	h.Keys("q")
	if !h.Quit() || closer.calls != 1 {
		t.Fatalf("expected quit with one close, got quit=%v closes=%d", h.Quit(), closer.calls)
	}
	m.OnQuitRequested()
	if closer.calls != 1 {
		t.Fatalf("expected a second quit not to close again")
	}
}

func TestForceQuitWhileEditing(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "tab", "enter")
	h.Type("x")
	h.Keys("ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit from the label editor")
	}
	if got := labels(m)[0]; got != "Salix_14" {
		t.Fatalf("expected unfinished edit discarded, got %q", got)
	}
}

func TestQWhileEditingIsText(t *testing.T) {
	m, h := newTestModel(t, nil)
	h.Keys("tab", "tab", "enter", "q")
	if h.Quit() {
		t.Fatalf("expected q to be typed into the label")
	}
	if got := labels(m)[0]; got != "Salix_14q" {
		t.Fatalf("expected q appended, got %q", got)
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(testutil.NewConfig(t, setup.Defaults{}), Options{Width: 40})
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.width != 40 || m.height != 50 {
		t.Fatalf("expected fixed width and resized height, got %dx%d", m.width, m.height)
	}
}
