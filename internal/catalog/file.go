package catalog

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileSource reads a catalog snapshot from a YAML document, for example:
//
//	disks:
//	  - id: sda
//	    model: QEMU HARDDISK
//	    size: 21474836480
//	partitions:
//	  - device: sda1
//	    fs: ext4
//	    os: Salix 14
//	boot_partitions:
//	  - device: sda1
//	    fs: ext4
//	    os: Salix 14
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource returns a source backed by path on fs.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSource{fs: fs, path: path}
}

func (f *FileSource) read() (Snapshot, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode catalog %s: %w", f.path, err)
	}
	return snap, nil
}

func (f *FileSource) ListDisks(context.Context) ([]Disk, error) {
	snap, err := f.read()
	if err != nil {
		return nil, err
	}
	return snap.Disks, nil
}

func (f *FileSource) ListPartitions(context.Context) ([]Partition, error) {
	snap, err := f.read()
	if err != nil {
		return nil, err
	}
	return snap.Partitions, nil
}

func (f *FileSource) ListBootPartitions(context.Context) ([]Partition, error) {
	snap, err := f.read()
	if err != nil {
		return nil, err
	}
	return snap.BootPartitions, nil
}
