package events

import "github.com/atomicstack/bootsetup/internal/logging"

type FormTracer struct{}

type PickerTracer struct{}

type CommandTracer struct{}

var (
	Form    = FormTracer{}
	Picker  = PickerTracer{}
	Command = CommandTracer{}
)

func (FormTracer) Focus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (FormTracer) Backend(backend string, changed bool) {
	logging.Trace("form.backend", map[string]interface{}{"backend": backend, "changed": changed})
}

func (FormTracer) Target(backend, target string) {
	logging.Trace("form.target", map[string]interface{}{"backend": backend, "target": target})
}

func (FormTracer) Revert(what string) {
	logging.Trace("form.revert", map[string]interface{}{"what": what})
}

func (FormTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("form.error", map[string]interface{}{"error": err.Error()})
}

func (PickerTracer) Open(kind string, items int) {
	logging.Trace("picker.open", map[string]interface{}{"kind": kind, "items": items})
}

func (PickerTracer) Filter(kind, filter string, matches int) {
	logging.Trace("picker.filter", map[string]interface{}{"kind": kind, "filter": filter, "matches": matches})
}

func (PickerTracer) Cursor(kind string, cursor int) {
	logging.Trace("picker.cursor", map[string]interface{}{"kind": kind, "cursor": cursor})
}

func (PickerTracer) Close(kind, chosen string) {
	logging.Trace("picker.close", map[string]interface{}{"kind": kind, "chosen": chosen})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
