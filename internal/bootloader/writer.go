// Package bootloader installs LiLo or Grub2 on the running system.
package bootloader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atomicstack/bootsetup/internal/catalog"
	"github.com/atomicstack/bootsetup/internal/commit"
	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/atomicstack/bootsetup/internal/logging/events"
	"github.com/spf13/afero"
)

const defaultLiLoConf = "/etc/lilo.conf"

// System runs the real installers.
type System struct {
	fs        afero.Fs
	run       catalog.Runner
	liloConf   string
	mountBase  string
	rootDevice string

	mu     sync.Mutex
	mounts []string
}

// Option customises a System.
type Option func(*System)

// WithLiLoConf overrides where lilo.conf is written.
func WithLiLoConf(path string) Option {
	return func(s *System) { s.liloConf = path }
}

// WithRootDevice names the partition of the running system instead of asking
// findmnt.
func WithRootDevice(device string) Option {
	return func(s *System) { s.rootDevice = device }
}

// WithMountBase sets the directory temporary Grub2 mount points are created in.
func WithMountBase(dir string) Option {
	return func(s *System) { s.mountBase = dir }
}

// New returns a System writing through fs and running commands with run. Nil
// arguments fall back to the real filesystem and catalog.ExecRunner.
func New(fs afero.Fs, run catalog.Runner, opts ...Option) *System {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if run == nil {
		run = catalog.ExecRunner
	}
	s := &System{fs: fs, run: run, liloConf: defaultLiLoConf}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ commit.Writer = (*System)(nil)

func (s *System) exec(ctx context.Context, name string, args ...string) error {
	events.Commit.Exec(name, args)
	out, err := s.run(ctx, name, args...)
	if len(out) > 0 {
		logging.Debugf("%s: %s", name, strings.TrimSpace(string(out)))
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Close retries the unmounts a finished Grub2 installation could not do.
func (s *System) Close() error {
	s.mu.Lock()
	mounts := s.mounts
	s.mounts = nil
	s.mu.Unlock()

	var errs []error
	for _, dir := range mounts {
		if err := s.unmount(context.Background(), dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
