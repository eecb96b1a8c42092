package catalog

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

const (
	sysBlockDir = "/sys/block"
	sectorSize  = 512
)

// skipped block device name prefixes: virtual, optical and floppy devices.
var ignoredDevicePrefixes = []string{"loop", "ram", "zram", "sr", "fd", "dm-"}

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ProbeSource discovers disks from sysfs, filesystems with blkid and
// installed operating systems with os-prober.
type ProbeSource struct {
	fs  afero.Fs
	run Runner
}

// NewProbeSource builds a probe reading sysfs from fs. Nil arguments fall back
// to the real filesystem and ExecRunner.
func NewProbeSource(fs afero.Fs, run Runner) *ProbeSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if run == nil {
		run = ExecRunner
	}
	return &ProbeSource{fs: fs, run: run}
}

func (p *ProbeSource) ListDisks(ctx context.Context) ([]Disk, error) {
	names, err := p.blockDevices()
	if err != nil {
		return nil, err
	}
	disks := make([]Disk, 0, len(names))
	for _, name := range names {
		dir := path.Join(sysBlockDir, name)
		disks = append(disks, Disk{
			ID:    name,
			Model: p.readString(path.Join(dir, "device", "model")),
			Size:  p.readSectors(path.Join(dir, "size")),
		})
	}
	return disks, nil
}

func (p *ProbeSource) ListPartitions(ctx context.Context) ([]Partition, error) {
	names, err := p.blockDevices()
	if err != nil {
		return nil, err
	}
	var parts []Partition
	for _, disk := range names {
		children, err := p.partitionsOf(disk)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			size := p.readSectors(path.Join(sysBlockDir, disk, child, "size"))
			// extended partitions only hold the logical partition table
			if size <= 2*sectorSize {
				continue
			}
			fsType := p.fileSystem(ctx, child)
			if fsType == "" || fsType == "swap" {
				continue
			}
			parts = append(parts, Partition{
				Device:      child,
				FileSystem:  fsType,
				Description: fmt.Sprintf("%s on %s", humanize.Bytes(size), disk),
				Size:        size,
			})
		}
	}
	return parts, nil
}

func (p *ProbeSource) ListBootPartitions(ctx context.Context) ([]Partition, error) {
	out, err := p.run(ctx, "os-prober")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("os-prober: %w", err)
	}
	known, err := p.ListPartitions(ctx)
	if err != nil {
		return nil, err
	}
	byDevice := make(map[string]Partition, len(known))
	for _, part := range known {
		byDevice[part.Device] = part
	}
	return parseOSProber(out, byDevice), nil
}

// parseOSProber turns lines like "/dev/sda1:Salix 14:Salix:linux" into boot
// partitions, keeping the first line seen for each device.
func parseOSProber(out []byte, known map[string]Partition) []Partition {
	var boot []Partition
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Split(strings.TrimSpace(scanner.Text()), ":")
		if len(fields) < 4 {
			continue
		}
		dev := fields[0]
		if idx := strings.Index(dev, "@"); idx >= 0 {
			dev = dev[:idx]
		}
		dev = strings.TrimPrefix(dev, "/dev/")
		if dev == "" {
			continue
		}
		if _, dup := seen[dev]; dup {
			continue
		}
		seen[dev] = struct{}{}
		part := known[dev]
		part.Device = dev
		part.OS = fields[1]
		part.Description = fmt.Sprintf("%s (%s)", fields[2], fields[3])
		boot = append(boot, part)
	}
	return boot
}

func (p *ProbeSource) blockDevices() ([]string, error) {
	entries, err := afero.ReadDir(p.fs, sysBlockDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sysBlockDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if ignoredDevice(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (p *ProbeSource) partitionsOf(disk string) ([]string, error) {
	entries, err := afero.ReadDir(p.fs, path.Join(sysBlockDir, disk))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", disk, err)
	}
	var children []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), disk) {
			continue
		}
		if ok, _ := afero.Exists(p.fs, path.Join(sysBlockDir, disk, entry.Name(), "partition")); ok {
			children = append(children, entry.Name())
		}
	}
	sort.Strings(children)
	return children, nil
}

func (p *ProbeSource) fileSystem(ctx context.Context, device string) string {
	out, err := p.run(ctx, "blkid", "-s", "TYPE", "-o", "value", "/dev/"+device)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (p *ProbeSource) readString(file string) string {
	data, err := afero.ReadFile(p.fs, file)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (p *ProbeSource) readSectors(file string) uint64 {
	n, err := strconv.ParseUint(p.readString(file), 10, 64)
	if err != nil {
		return 0
	}
	return n * sectorSize
}

func ignoredDevice(name string) bool {
	for _, prefix := range ignoredDevicePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
