package bootloader

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/atomicstack/bootsetup/internal/catalog"
	"github.com/atomicstack/bootsetup/internal/logging"
	"github.com/atomicstack/bootsetup/internal/setup"
)

// grub2Constraints matches the Grub2 release line (2.x).
var grub2Constraints = mustInitConstraint(semver.NewConstraint(">= 2, < 3"))

func mustInitConstraint(c *semver.Constraints, err error) *semver.Constraints {
	if err != nil {
		panic(fmt.Errorf("must initialize semver constraint: %w", err))
	}
	return c
}

// LookPath reports where an executable lives, like exec.LookPath.
type LookPath func(file string) (string, error)

// Detect lists the backends installed on the system, LiLo first.
func Detect(ctx context.Context, lookPath LookPath, run catalog.Runner) []setup.Backend {
	var found []setup.Backend
	if _, err := lookPath("lilo"); err == nil {
		found = append(found, setup.LiLoBackend)
	}
	if _, err := lookPath("grub-install"); err == nil {
		out, err := run(ctx, "grub-install", "--version")
		if err != nil {
			logging.Warnf("grub-install --version: %v", err)
		} else if v, err := GrubVersion(string(out)); err != nil {
			logging.Warnf("%v", err)
		} else if grub2Constraints.Check(v) {
			found = append(found, setup.Grub2Backend)
		} else {
			logging.Infof("ignoring grub %s, Grub2 required", v)
		}
	}
	return found
}

// GrubVersion parses "grub-install (GRUB) 2.06-13+deb12u1" into 2.6.0.
func GrubVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty grub version output")
	}
	raw := fields[len(fields)-1]
	if idx := strings.IndexAny(raw, "-+~"); idx > 0 {
		raw = raw[:idx]
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parse grub version %q: %w", raw, err)
	}
	return v, nil
}
