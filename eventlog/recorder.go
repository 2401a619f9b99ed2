// Package eventlog collects the logs a chain commits. Recorder keeps them in memory for tests and
// tools, Store persists them to SQLite so an indexer can query them after the process exits.
package eventlog

import (
	"sync"

	"github.com/smartcontractkit/governor/chain"
)

var (
	_ chain.Sink = (*Recorder)(nil)
	_ chain.Sink = (*Store)(nil)
)

// Recorder is an in-memory chain.Sink.
type Recorder struct {
	mu   sync.Mutex
	logs []chain.Log
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Consume implements chain.Sink.
func (r *Recorder) Consume(logs []chain.Log) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, logs...)
}

// Logs returns every recorded log in commit order.
func (r *Recorder) Logs() []chain.Log {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := make([]chain.Log, len(r.logs))
	copy(logs, r.logs)

	return logs
}

// Named returns the recorded logs whose event has the given name.
func (r *Recorder) Named(name string) []chain.Log {
	r.mu.Lock()
	defer r.mu.Unlock()

	var logs []chain.Log
	for _, log := range r.logs {
		if log.Event.EventName() == name {
			logs = append(logs, log)
		}
	}

	return logs
}

// Reset drops every recorded log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = nil
}
