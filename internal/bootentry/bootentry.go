// Package bootentry holds the ordered, relabelable list of boot menu entries
// derived from the catalog's boot partitions. Entries are addressed by their
// partition device id, never by position.
package bootentry

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/atomicstack/bootsetup/internal/catalog"
)

// MaxLabelLength is the longest label LiLo accepts.
const MaxLabelLength = 15

var (
	whitespace   = regexp.MustCompile(`\s`)
	loaderSuffix = regexp.MustCompile(`_\(loader\)`)
	parentheses  = regexp.MustCompile(`[()]`)
)

// SanitizeLabel derives a LiLo compatible label from an OS description:
// whitespace becomes "_", the "_(loader)" qualifier and any parentheses are
// dropped, and the result is cut to MaxLabelLength runes.
func SanitizeLabel(description string) string {
	label := whitespace.ReplaceAllString(strings.TrimSpace(description), "_")
	label = loaderSuffix.ReplaceAllString(label, "")
	label = parentheses.ReplaceAllString(label, "")
	if runes := []rune(label); len(runes) > MaxLabelLength {
		label = string(runes[:MaxLabelLength])
	}
	return label
}

// Entry is one boot partition plus its boot menu label.
type Entry struct {
	Partition catalog.Partition
	Label     string
}

// Device returns the partition device id identifying the entry.
func (e Entry) Device() string { return e.Partition.Device }

// ValidationError reports catalog data the list cannot be built from.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid boot partition: " + e.Reason }

// NotFoundError reports an operation on a device id that has no entry.
type NotFoundError struct {
	Device string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("no boot entry for device %q", e.Device) }

// List is the ordered sequence of boot entries.
type List struct {
	entries []Entry
}

// New builds one entry per boot partition in catalog order. Repeated device
// ids keep their first occurrence.
func New(parts []catalog.Partition) (*List, error) {
	l := &List{entries: make([]Entry, 0, len(parts))}
	seen := make(map[string]struct{}, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part.Device) == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("partition %d has an empty device id", i)}
		}
		if _, dup := seen[part.Device]; dup {
			continue
		}
		seen[part.Device] = struct{}{}
		l.entries = append(l.entries, Entry{Partition: part, Label: SanitizeLabel(part.OS)})
	}
	return l, nil
}

// FromEntries builds a list holding a copy of entries, in order.
func FromEntries(entries []Entry) *List {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return &List{entries: dup}
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Position returns the index of the entry for device.
func (l *List) Position(device string) (int, bool) {
	if l == nil {
		return -1, false
	}
	for i, e := range l.entries {
		if e.Partition.Device == device {
			return i, true
		}
	}
	return -1, false
}

// Get returns the entry for device.
func (l *List) Get(device string) (Entry, bool) {
	idx, ok := l.Position(device)
	if !ok {
		return Entry{}, false
	}
	return l.entries[idx], true
}

// Relabel replaces the label of the entry for device. Empty and duplicate
// labels are accepted here; they are rejected at commit time.
func (l *List) Relabel(device, label string) error {
	idx, ok := l.Position(device)
	if !ok {
		return &NotFoundError{Device: device}
	}
	l.entries[idx].Label = label
	return nil
}

// MoveUp swaps the entry with its predecessor. The first entry stays put.
func (l *List) MoveUp(device string) error {
	idx, ok := l.Position(device)
	if !ok {
		return &NotFoundError{Device: device}
	}
	if idx > 0 {
		l.entries[idx-1], l.entries[idx] = l.entries[idx], l.entries[idx-1]
	}
	return nil
}

// MoveDown swaps the entry with its successor. The last entry stays put.
func (l *List) MoveDown(device string) error {
	idx, ok := l.Position(device)
	if !ok {
		return &NotFoundError{Device: device}
	}
	if idx < len(l.entries)-1 {
		l.entries[idx], l.entries[idx+1] = l.entries[idx+1], l.entries[idx]
	}
	return nil
}

// All yields the entries in their current order. Each iteration reads the
// live list, so ranging again after a mutation sees the new order.
func (l *List) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if l == nil {
			return
		}
		for i := 0; i < len(l.entries); i++ {
			if !yield(l.entries[i]) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in order.
func (l *List) Entries() []Entry {
	if l == nil {
		return nil
	}
	dup := make([]Entry, len(l.entries))
	copy(dup, l.entries)
	return dup
}
