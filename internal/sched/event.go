// internal/sched/event.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent is recorded on every key action of a simulation. PID and
// Remaining are zero for StatusIdle, which belongs to no process.
type StatusEvent struct {
	Time      int
	Kind      StatusKind
	PID       PID
	Remaining int
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// HasProcess reports whether the event belongs to a process.
func (ev StatusEvent) HasProcess() bool { return ev.Kind != StatusIdle }

// trace collects the events of a single run.
type trace []StatusEvent

func (t *trace) emit(now int, kind StatusKind, p *Process) {
	ev := StatusEvent{Time: now, Kind: kind}
	if p != nil {
		ev.PID = p.PID
		ev.Remaining = p.Remaining
	}
	*t = append(*t, ev)
}
