// Package testutil provides the sample machine shared by package tests: two
// disks, a Linux pair and a Windows install that LiLo chain loads.
package testutil

import (
	"testing"

	"github.com/atomicstack/bootsetup/internal/catalog"
	"github.com/atomicstack/bootsetup/internal/setup"
	"github.com/spf13/afero"
)

// CatalogYAML is Catalog in the format read by catalog.FileSource.
const CatalogYAML = `disks:
  - id: sda
    model: QEMU HARDDISK
    size: 21474836480
  - id: sdb
    model: USB DISK
    size: 8000000000
partitions:
  - device: sda1
    fs: ext4
    os: Salix 14
    description: Linux
    size: 10737418240
  - device: sda2
    fs: ntfs
    os: Windows 7 (loader)
    description: Microsoft basic data
    size: 5368709120
  - device: sda5
    fs: xfs
    os: Arch Linux (loader)
    description: Linux
    size: 5368709120
  - device: sdb1
    fs: vfat
    description: Data
    size: 8000000000
boot_partitions:
  - device: sda1
    fs: ext4
    os: Salix 14
  - device: sda2
    fs: ntfs
    os: Windows 7 (loader)
  - device: sda5
    fs: xfs
    os: Arch Linux (loader)
`

// Catalog returns the sample machine.
func Catalog() catalog.Snapshot {
	return catalog.Snapshot{
		Disks: []catalog.Disk{
			{ID: "sda", Model: "QEMU HARDDISK", Size: 21474836480},
			{ID: "sdb", Model: "USB DISK", Size: 8000000000},
		},
		Partitions: []catalog.Partition{
			{Device: "sda1", FileSystem: "ext4", OS: "Salix 14", Description: "Linux", Size: 10737418240},
			{Device: "sda2", FileSystem: "ntfs", OS: "Windows 7 (loader)", Description: "Microsoft basic data", Size: 5368709120},
			{Device: "sda5", FileSystem: "xfs", OS: "Arch Linux (loader)", Description: "Linux", Size: 5368709120},
			{Device: "sdb1", FileSystem: "vfat", Description: "Data", Size: 8000000000},
		},
		BootPartitions: []catalog.Partition{
			{Device: "sda1", FileSystem: "ext4", OS: "Salix 14"},
			{Device: "sda2", FileSystem: "ntfs", OS: "Windows 7 (loader)"},
			{Device: "sda5", FileSystem: "xfs", OS: "Arch Linux (loader)"},
		},
	}
}

// WriteCatalog stores CatalogYAML at path on fs.
func WriteCatalog(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(CatalogYAML), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

// NewConfig builds a configuration over Catalog.
func NewConfig(t testing.TB, defaults setup.Defaults) *setup.Configuration {
	t.Helper()
	cfg, err := setup.New(Catalog(), defaults)
	if err != nil {
		t.Fatalf("setup.New: %v", err)
	}
	return cfg
}
