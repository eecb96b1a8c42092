package bootloader

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/commit"
	"github.com/atomicstack/bootsetup/internal/logging"
)

// DryRunWriter logs what would be installed without touching the system.
type DryRunWriter struct {
	mu      sync.Mutex
	actions []string
}

var _ commit.Writer = (*DryRunWriter)(nil)

// DryRun returns a writer for test mode.
func DryRun() *DryRunWriter {
	return &DryRunWriter{}
}

func (d *DryRunWriter) record(action string) {
	d.mu.Lock()
	d.actions = append(d.actions, action)
	d.mu.Unlock()
	logging.Infof("dry run: %s", action)
}

func (d *DryRunWriter) InstallLiLo(ctx context.Context, disk string, entries []bootentry.Entry) error {
	conf, err := RenderLiLoConf(disk, "", entries)
	if err != nil {
		return err
	}
	logging.Debugf("dry run lilo.conf:\n%s", conf)
	d.record(fmt.Sprintf("install LiLo on %s with %d entries", disk, len(entries)))
	return nil
}

func (d *DryRunWriter) InstallGrub2(ctx context.Context, partition string) error {
	d.record(fmt.Sprintf("install Grub2 files on %s, boot code on %s", partition, ParentDisk(partition)))
	return nil
}

func (d *DryRunWriter) Close() error { return nil }

// Actions returns what the writer was asked to do, in order.
func (d *DryRunWriter) Actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.actions...)
}
