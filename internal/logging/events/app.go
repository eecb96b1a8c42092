package events

import "github.com/atomicstack/bootsetup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Catalog(disks, partitions, boot int) {
	logging.Trace("app.catalog", map[string]interface{}{"disks": disks, "partitions": partitions, "boot": boot})
}

func (AppTracer) Detected(backends []string) {
	logging.Trace("app.detect", map[string]interface{}{"backends": backends})
}

func (AppTracer) Quit(reason string) {
	logging.Trace("app.quit", map[string]interface{}{"reason": reason})
}
