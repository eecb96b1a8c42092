// Package setup owns the in-memory bootloader configuration gathered by the
// form: which backend is active, the target each backend installs to, and
// the LiLo boot entry list.
//
// The active backend is a tagged variant. LiLo and Grub2 each keep their own
// state for the whole session; switching backends only changes which one is
// active, so LiLo labels and order survive a round trip through Grub2 and a
// Grub2 target survives a round trip through LiLo.
package setup

import (
	"fmt"
	"strings"

	"github.com/atomicstack/bootsetup/internal/bootentry"
	"github.com/atomicstack/bootsetup/internal/catalog"
)

// Backend identifies a bootloader installer.
type Backend int

const (
	LiLoBackend Backend = iota
	Grub2Backend
)

// Backends lists every supported backend in display order.
var Backends = []Backend{LiLoBackend, Grub2Backend}

func (b Backend) String() string {
	switch b {
	case LiLoBackend:
		return "LiLo"
	case Grub2Backend:
		return "Grub2"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend accepts "lilo" or "grub2" in any case.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lilo":
		return LiLoBackend, nil
	case "grub2", "grub":
		return Grub2Backend, nil
	}
	return 0, fmt.Errorf("unknown bootloader %q (expected lilo or grub2)", name)
}

// Variant is the state of one backend.
type Variant interface {
	Backend() Backend
	// Target returns the selected install target, empty when none.
	Target() string
	variant()
}

// LiLo installs to a disk's master boot record and needs the boot entries.
type LiLo struct {
	Disk    string
	Entries *bootentry.List
}

func (*LiLo) Backend() Backend { return LiLoBackend }
func (l *LiLo) Target() string { return l.Disk }
func (*LiLo) variant()         {}

// Grub2 installs its files to a partition.
type Grub2 struct {
	Partition string
}

func (*Grub2) Backend() Backend { return Grub2Backend }
func (g *Grub2) Target() string { return g.Partition }
func (*Grub2) variant()         {}

// Defaults selects the initial backend and target.
type Defaults struct {
	// Backend is an explicit override ("lilo", "grub2"); empty defers to Detected.
	Backend string
	// Detected lists the backends the system reported, preferred first.
	Detected []Backend
	// Target is an explicit disk or partition id.
	Target string
}

// Configuration is the aggregate mutated by the form controller.
type Configuration struct {
	catalog catalog.Snapshot
	active  Variant
	lilo    *LiLo
	grub2   *Grub2
}

// New builds the session configuration from the catalog snapshot.
func New(snap catalog.Snapshot, defaults Defaults) (*Configuration, error) {
	backend := LiLoBackend
	if defaults.Backend != "" {
		b, err := ParseBackend(defaults.Backend)
		if err != nil {
			return nil, err
		}
		backend = b
	} else if len(defaults.Detected) > 0 {
		backend = defaults.Detected[0]
	}

	entries, err := bootentry.New(snap.BootPartitions)
	if err != nil {
		return nil, err
	}
	c := &Configuration{
		catalog: snap,
		lilo:    &LiLo{Entries: entries},
		grub2:   &Grub2{},
	}
	if target := strings.TrimSpace(defaults.Target); target != "" && snap.HasDisk(target) {
		c.lilo.Disk = target
	} else if len(snap.Disks) > 0 {
		c.lilo.Disk = snap.Disks[0].ID
	}
	if target := strings.TrimSpace(defaults.Target); target != "" && snap.HasPartition(target) {
		c.grub2.Partition = target
	}
	c.SetBackend(backend)
	return c, nil
}

// Catalog returns the snapshot the configuration validates against.
func (c *Configuration) Catalog() catalog.Snapshot { return c.catalog }

// Active returns the active backend state.
func (c *Configuration) Active() Variant { return c.active }

// Backend returns the active backend.
func (c *Configuration) Backend() Backend { return c.active.Backend() }

// Target returns the active backend's target, empty when none is selected.
func (c *Configuration) Target() string { return c.active.Target() }

// LiLo returns the LiLo state, active or not.
func (c *Configuration) LiLo() *LiLo { return c.lilo }

// Grub2 returns the Grub2 state, active or not.
func (c *Configuration) Grub2() *Grub2 { return c.grub2 }

// Entries returns the LiLo boot entry list.
func (c *Configuration) Entries() *bootentry.List { return c.lilo.Entries }

// SetBackend activates b and reports whether the active backend changed.
// Selecting the already active backend leaves everything untouched.
func (c *Configuration) SetBackend(b Backend) bool {
	var next Variant
	switch b {
	case LiLoBackend:
		next = c.lilo
	case Grub2Backend:
		next = c.grub2
	default:
		return false
	}
	if c.active == next {
		return false
	}
	c.active = next
	return true
}

// SetTarget selects the install target of the active backend: a disk for
// LiLo, a partition for Grub2. An id missing from the catalog clears the
// target and returns an *InvalidTargetError.
func (c *Configuration) SetTarget(id string) error {
	switch v := c.active.(type) {
	case *LiLo:
		if !c.catalog.HasDisk(id) {
			v.Disk = ""
			return &InvalidTargetError{Backend: LiLoBackend, Target: id}
		}
		v.Disk = id
	case *Grub2:
		if !c.catalog.HasPartition(id) {
			v.Partition = ""
			return &InvalidTargetError{Backend: Grub2Backend, Target: id}
		}
		v.Partition = id
	}
	return nil
}

// Snapshot copies the configuration into an immutable value.
func (c *Configuration) Snapshot() Snapshot {
	return Snapshot{
		Backend:   c.Backend(),
		Disk:      c.lilo.Disk,
		Partition: c.grub2.Partition,
		Entries:   c.lilo.Entries.Entries(),
	}
}

// Restore puts the configuration back to the state captured in snap. The
// snapshot must come from this configuration; targets are not revalidated.
func (c *Configuration) Restore(snap Snapshot) {
	c.lilo.Disk = snap.Disk
	c.grub2.Partition = snap.Partition
	c.lilo.Entries = bootentry.FromEntries(snap.Entries)
	c.SetBackend(snap.Backend)
}

// ResetEntries rebuilds the boot entries from the catalog, dropping custom
// labels and order.
func (c *Configuration) ResetEntries() error {
	entries, err := bootentry.New(c.catalog.BootPartitions)
	if err != nil {
		return err
	}
	c.lilo.Entries = entries
	return nil
}

// Snapshot is the configuration handed to the commit gateway. It shares no
// memory with the live Configuration.
type Snapshot struct {
	Backend   Backend
	Disk      string
	Partition string
	Entries   []bootentry.Entry
}
