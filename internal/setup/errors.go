package setup

import (
	"fmt"
	"strings"

	"github.com/atomicstack/bootsetup/internal/bootentry"
)

// ValidationError lists every rule a configuration violates.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "invalid configuration"
	case 1:
		return "invalid configuration: " + e.Violations[0]
	}
	return fmt.Sprintf("invalid configuration (%d problems): %s", len(e.Violations), strings.Join(e.Violations, "; "))
}

// InvalidTargetError reports a target id missing from the catalog snapshot.
type InvalidTargetError struct {
	Backend Backend
	Target  string
}

func (e *InvalidTargetError) Error() string {
	kind := "disk"
	if e.Backend == Grub2Backend {
		kind = "partition"
	}
	return fmt.Sprintf("%s %q is not available for %s", kind, e.Target, e.Backend)
}

// NotFoundError reports an entry operation on an unknown device id.
type NotFoundError = bootentry.NotFoundError

// WriterFailure wraps an error returned by the bootloader writer.
type WriterFailure struct {
	Backend Backend
	Err     error
}

func (e *WriterFailure) Error() string {
	return fmt.Sprintf("%s installation failed: %v", e.Backend, e.Err)
}

func (e *WriterFailure) Unwrap() error { return e.Err }
