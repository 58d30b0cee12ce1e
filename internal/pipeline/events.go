package pipeline

import (
	"sync"
	"time"

	"github.com/harrison/advisor/internal/models"
)

// EventType identifies a progress event emitted by the executor.
type EventType string

// Progress event types, emitted in execution order. These are real
// task-completion signals, suitable for driving progress displays.
const (
	EventRunStarted    EventType = "run_started"
	EventTaskStarted   EventType = "task_started"
	EventTaskCompleted EventType = "task_completed"
	EventTaskFailed    EventType = "task_failed"
	EventRunCompleted  EventType = "run_completed"
	EventRunFailed     EventType = "run_failed"
)

// Event is one progress notification from a pipeline run.
type Event struct {
	Type     EventType
	RunID    string
	Pipeline string
	Kind     models.Kind
	Task     string // Task name for task-level events, empty otherwise
	TaskNum  int    // 1-based position of the task, 0 for run-level events
	Total    int    // Total task count in the pipeline
	Err      error  // Set for task_failed / run_failed
	Time     time.Time
}

// EventSink receives progress events. Implementations must be safe for
// calls from the executing goroutine and must not block for long; the
// executor calls sinks synchronously between tasks.
type EventSink interface {
	Handle(Event)
}

// Trace is an EventSink that records every event in order. Used by tests
// to assert sequential dependency ordering and by callers that want a
// post-run execution record.
type Trace struct {
	mu     sync.Mutex
	events []Event
}

// Handle implements EventSink.
func (tr *Trace) Handle(ev Event) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = append(tr.events, ev)
}

// Events returns a copy of the recorded events in emission order.
func (tr *Trace) Events() []Event {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]Event, len(tr.events))
	copy(out, tr.events)
	return out
}

// Index returns the position of the first event matching type and task,
// or -1.
func (tr *Trace) Index(t EventType, task string) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for i, ev := range tr.events {
		if ev.Type == t && ev.Task == task {
			return i
		}
	}
	return -1
}
