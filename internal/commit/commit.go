// Package commit validates a configuration snapshot and hands it to the
// bootloader writer. It is the only path from the form to a side effect.
package commit

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/setup"
)

// Writer performs the actual installation.
type Writer interface {
	InstallLiLo(ctx context.Context, disk string, entries []bootentry.Entry) error
	InstallGrub2(ctx context.Context, partition string) error
	Close() error
}

// Validate checks snap and returns a *setup.ValidationError listing every
// violated rule, or nil.
func Validate(snap setup.Snapshot) error {
	var violations []string
	switch snap.Backend {
	case setup.LiLoBackend:
		violations = validateLiLo(snap)
	case setup.Grub2Backend:
		if snap.Partition == "" {
			violations = append(violations, "no target partition selected for Grub2")
		}
	default:
		violations = append(violations, fmt.Sprintf("unsupported bootloader %s", snap.Backend))
	}
	if len(violations) == 0 {
		return nil
	}
	return &setup.ValidationError{Violations: violations}
}

func validateLiLo(snap setup.Snapshot) []string {
	var violations []string
	if snap.Disk == "" {
		violations = append(violations, "no target disk selected for LiLo")
	}
	if len(snap.Entries) == 0 {
		violations = append(violations, "no boot entries to install")
	}
	owners := make(map[string]string, len(snap.Entries))
	for _, e := range snap.Entries {
		label := e.Label
		switch {
		case label == "":
			violations = append(violations, fmt.Sprintf("%s: label is empty", e.Device()))
			continue
		case len([]rune(label)) > bootentry.MaxLabelLength:
			violations = append(violations, fmt.Sprintf("%s: label %q is longer than %d characters", e.Device(), label, bootentry.MaxLabelLength))
		case strings.ContainsFunc(label, unicode.IsSpace) || strings.ContainsRune(label, '"'):
			violations = append(violations, fmt.Sprintf("%s: label %q must not contain spaces or quotes", e.Device(), label))
		}
		if first, dup := owners[label]; dup {
			violations = append(violations, fmt.Sprintf("label %q is used by both %s and %s", label, first, e.Device()))
			continue
		}
		owners[label] = e.Device()
	}
	return violations
}

// Gateway runs validation and the writer for a configuration.
type Gateway struct {
	writer Writer
}

// NewGateway returns a gateway that installs through w.
func NewGateway(w Writer) *Gateway {
	return &Gateway{writer: w}
}

// CommitSnapshot validates snap and calls the writer for its backend exactly
// once. Writer errors are returned as *setup.WriterFailure.
func (g *Gateway) CommitSnapshot(ctx context.Context, snap setup.Snapshot) error {
	if err := Validate(snap); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	switch snap.Backend {
	case setup.LiLoBackend:
		err = g.writer.InstallLiLo(ctx, snap.Disk, snap.Entries)
	case setup.Grub2Backend:
		err = g.writer.InstallGrub2(ctx, snap.Partition)
	}
	if err != nil {
		return &setup.WriterFailure{Backend: snap.Backend, Err: err}
	}
	return nil
}

// Close releases writer resources.
func (g *Gateway) Close() error {
	if g == nil || g.writer == nil {
		return nil
	}
	return g.writer.Close()
}
