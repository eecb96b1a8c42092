package events

import "github.com/atomicstack/bootsetup/internal/logging"

type CommitTracer struct{}

var Commit = CommitTracer{}

func (CommitTracer) Begin(backend, target string, entries int) {
	logging.Trace("commit.begin", map[string]interface{}{"backend": backend, "target": target, "entries": entries})
}

func (CommitTracer) Rejected(violations []string) {
	logging.Trace("commit.rejected", map[string]interface{}{"violations": violations})
}

func (CommitTracer) Failed(backend string, err error) {
	payload := map[string]interface{}{"backend": backend}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("commit.failed", payload)
}

func (CommitTracer) Done(backend, target string) {
	logging.Trace("commit.done", map[string]interface{}{"backend": backend, "target": target})
}

func (CommitTracer) Exec(name string, args []string) {
	logging.Trace("commit.exec", map[string]interface{}{"name": name, "args": args})
}
