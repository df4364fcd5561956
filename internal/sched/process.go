package sched

// PID uniquely identifies a process in the simulated batch.
type PID int

// Process is one entry of the batch plus the state a simulation mutates.
type Process struct {
	PID     PID
	Arrival int // time the process becomes ready
	Burst   int // total CPU time required
	Size    int // carried through, never consulted by the schedulers

	Remaining  int // decremented by RR only
	Start      int // first or most recent dispatch
	Finish     int
	Waiting    int
	Turnaround int
	Response   int
	Dispatches int

	executed bool // RR: true after the first dispatch
	readyAt  int  // RR: when the process last joined the ready queue
}

// NewProcess creates a process with its mutable state reset.
func NewProcess(pid PID, arrival, burst, size int) Process {
	p := Process{
		PID:     pid,
		Arrival: arrival,
		Burst:   burst,
		Size:    size,
	}
	p.reset()
	return p
}

// reset clears everything a previous run could have written.
func (p *Process) reset() {
	p.Remaining = p.Burst
	p.Start = 0
	p.Finish = 0
	p.Waiting = 0
	p.Turnaround = 0
	p.Response = 0
	p.Dispatches = 0
	p.executed = false
	p.readyAt = p.Arrival
}

// clone returns an independent, reset copy of procs.
func clone(procs []Process) []Process {
	out := make([]Process, len(procs))
	copy(out, procs)
	for i := range out {
		out[i].reset()
	}
	return out
}

// GanttEntry is one dispatch interval. End includes the trailing context switch.
type GanttEntry struct {
	PID   PID `json:"pid"`
	Start int `json:"start_time"`
	End   int `json:"end_time"`
}
