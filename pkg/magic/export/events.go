package export

import "time"

// EventKind identifies the three points where an export reports outward.
type EventKind int

const (
	EventStarted EventKind = iota
	EventCompleted
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is emitted to the Listener. Its slices are private copies, so
// listeners may keep or modify them.
type Event struct {
	Kind     EventKind
	BaseName string
	Dir      string
	Time     time.Time
	Files    []string // set on EventCompleted
	Errors   []string // set on EventFailed
}

// Listener receives export events synchronously on the exporting goroutine.
type Listener func(Event)

func (e *Exporter) emit(ev Event) {
	if e.listener == nil {
		return
	}
	ev.BaseName = e.baseName
	ev.Dir = e.dir
	ev.Time = time.Now()
	ev.Files = append([]string(nil), ev.Files...)
	ev.Errors = append([]string(nil), ev.Errors...)
	e.listener(ev)
}
