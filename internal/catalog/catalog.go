package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Disk is a whole block device that can receive a boot record.
type Disk struct {
	ID    string `yaml:"id"`
	Model string `yaml:"model"`
	Size  uint64 `yaml:"size"`
}

// Description renders the disk the way the target picker lists it.
func (d Disk) Description() string {
	parts := []string{d.ID}
	if d.Model != "" {
		parts = append(parts, d.Model)
	}
	if d.Size > 0 {
		parts = append(parts, humanize.Bytes(d.Size))
	}
	return strings.Join(parts, " - ")
}

// Partition is a single partition as reported by the system probe.
type Partition struct {
	Device      string `yaml:"device"`
	FileSystem  string `yaml:"fs"`
	OS          string `yaml:"os"`
	Description string `yaml:"description"`
	Size        uint64 `yaml:"size"`
}

// Summary renders the partition for pickers and the probe command.
func (p Partition) Summary() string {
	parts := []string{p.Device}
	if p.FileSystem != "" {
		parts = append(parts, p.FileSystem)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Size > 0 {
		parts = append(parts, humanize.Bytes(p.Size))
	}
	return strings.Join(parts, " - ")
}

// Source enumerates disks and partitions.
type Source interface {
	ListDisks(ctx context.Context) ([]Disk, error)
	ListPartitions(ctx context.Context) ([]Partition, error)
	ListBootPartitions(ctx context.Context) ([]Partition, error)
}

// Snapshot is the point-in-time catalog used for a whole session.
type Snapshot struct {
	Disks          []Disk      `yaml:"disks"`
	Partitions     []Partition `yaml:"partitions"`
	BootPartitions []Partition `yaml:"boot_partitions"`
}

// Load queries every listing of src once.
func Load(ctx context.Context, src Source) (Snapshot, error) {
	if src == nil {
		return Snapshot{}, fmt.Errorf("catalog source required")
	}
	disks, err := src.ListDisks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list disks: %w", err)
	}
	parts, err := src.ListPartitions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list partitions: %w", err)
	}
	boot, err := src.ListBootPartitions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list boot partitions: %w", err)
	}
	return Snapshot{
		Disks:          append([]Disk(nil), disks...),
		Partitions:     append([]Partition(nil), parts...),
		BootPartitions: append([]Partition(nil), boot...),
	}, nil
}

// Disk returns the disk with the given id.
func (s Snapshot) Disk(id string) (Disk, bool) {
	for _, d := range s.Disks {
		if d.ID == id {
			return d, true
		}
	}
	return Disk{}, false
}

// Partition returns the partition with the given device id.
func (s Snapshot) Partition(id string) (Partition, bool) {
	for _, p := range s.Partitions {
		if p.Device == id {
			return p, true
		}
	}
	return Partition{}, false
}

// HasDisk reports whether id names a disk in the snapshot.
func (s Snapshot) HasDisk(id string) bool {
	_, ok := s.Disk(id)
	return ok
}

// HasPartition reports whether id names a partition in the snapshot.
func (s Snapshot) HasPartition(id string) bool {
	_, ok := s.Partition(id)
	return ok
}

// ListDisks lets a Snapshot act as its own Source.
func (s Snapshot) ListDisks(context.Context) ([]Disk, error) { return s.Disks, nil }

func (s Snapshot) ListPartitions(context.Context) ([]Partition, error) { return s.Partitions, nil }

func (s Snapshot) ListBootPartitions(context.Context) ([]Partition, error) {
	return s.BootPartitions, nil
}
