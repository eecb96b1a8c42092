package bootloader

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode"

	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/spf13/afero"
)

// Disks whose names end in a digit number their partitions after a "p".
var numberedDisks = []string{"nvme", "mmcblk", "loop", "nbd", "md"}

// ParentDisk returns the disk holding partition: "sda5" gives "sda",
// "nvme0n1p2" gives "nvme0n1". It returns "" for a whole disk such as "sda"
// or "nvme0n1".
func ParentDisk(partition string) string {
	base := strings.TrimRightFunc(partition, unicode.IsDigit)
	if base == partition || base == "" {
		return ""
	}
	if trimmed, ok := strings.CutSuffix(base, "p"); ok && trimmed != "" && unicode.IsDigit(rune(trimmed[len(trimmed)-1])) {
		return trimmed
	}
	if strings.ContainsFunc(base, unicode.IsDigit) || slices.ContainsFunc(numberedDisks, func(p string) bool {
		return strings.HasPrefix(base, p)
	}) {
		return ""
	}
	return base
}

// InstallGrub2 mounts partition, installs Grub2 files to its /boot and the
// boot code to the parent disk, generates grub.cfg and unmounts again.
func (s *System) InstallGrub2(ctx context.Context, partition string) (err error) {
	disk := ParentDisk(partition)
	if disk == "" {
		return fmt.Errorf("cannot determine the disk of partition %q", partition)
	}
	dir, err := afero.TempDir(s.fs, s.mountBase, "bootsetup-")
	if err != nil {
		return fmt.Errorf("create mount point: %w", err)
	}
	if err := s.exec(ctx, "mount", "/dev/"+partition, dir); err != nil {
		_ = s.fs.Remove(dir)
		return err
	}
	defer func() {
		if uerr := s.unmount(context.WithoutCancel(ctx), dir); uerr != nil && err == nil {
			err = uerr
		}
	}()

	bootDir := path.Join(dir, "boot")
	if err := s.exec(ctx, "grub-install", "--boot-directory="+bootDir, "/dev/"+disk); err != nil {
		return err
	}
	if err := s.exec(ctx, "grub-mkconfig", "-o", path.Join(bootDir, "grub", "grub.cfg")); err != nil {
		return err
	}
	logging.Infof("installed grub2 files on %s, boot code on %s", partition, disk)
	return nil
}

// unmount releases dir. A failed unmount is left for Close.
func (s *System) unmount(ctx context.Context, dir string) error {
	if err := s.exec(ctx, "umount", dir); err != nil {
		s.mu.Lock()
		if !slices.Contains(s.mounts, dir) {
			s.mounts = append(s.mounts, dir)
		}
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.mounts = slices.DeleteFunc(s.mounts, func(m string) bool { return m == dir })
	s.mu.Unlock()
	if err := s.fs.Remove(dir); err != nil {
		logging.Warnf("remove mount point %s: %v", dir, err)
	}
	return nil
}
