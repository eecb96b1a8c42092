package events

import "github.com/atomicstack/bootsetup/internal/logging"

type EntryTracer struct{}

var Entry = EntryTracer{}

func (EntryTracer) Move(device, direction string, position int) {
	logging.Trace("entry.move", map[string]interface{}{"device": device, "direction": direction, "position": position})
}

func (EntryTracer) Relabel(device, label string) {
	logging.Trace("entry.relabel", map[string]interface{}{"device": device, "label": label})
}

func (EntryTracer) EditStart(device, label string) {
	logging.Trace("entry.edit-start", map[string]interface{}{"device": device, "label": label})
}

func (EntryTracer) EditEnd(device, label string, kept bool) {
	logging.Trace("entry.edit-end", map[string]interface{}{"device": device, "label": label, "kept": kept})
}

func (EntryTracer) NotFound(device string) {
	logging.Trace("entry.not-found", map[string]interface{}{"device": device})
}
