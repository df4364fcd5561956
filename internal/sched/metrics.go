package sched

// Stats aggregates one completed run.
type Stats struct {
	AvgWaiting     float64
	AvgTurnaround  float64
	AvgResponse    float64 // meaningful only when HasResponse is set
	HasResponse    bool    // only RR reports response time
	CPUUtilization float64
	Throughput     float64 // processes per time unit
	TotalTime      int
	BusyTime       int
	IdleTime       int
	SwitchTime     int
}

// aggregate reduces the mutated batch into averages. procs is never empty
// here; validate rejects empty batches before a run starts.
func aggregate(procs []Process, clock *Clock, withResponse bool) Stats {
	var waiting, turnaround, response int
	for _, p := range procs {
		waiting += p.Waiting
		turnaround += p.Turnaround
		response += p.Response
	}

	n := float64(len(procs))
	st := Stats{
		AvgWaiting:    float64(waiting) / n,
		AvgTurnaround: float64(turnaround) / n,
		HasResponse:   withResponse,
		TotalTime:     clock.Now(),
		BusyTime:      clock.Busy(),
		IdleTime:      clock.Idle(),
		SwitchTime:    clock.Switches(),
	}
	if withResponse {
		st.AvgResponse = float64(response) / n
	}
	if st.TotalTime > 0 {
		st.CPUUtilization = float64(st.BusyTime) / float64(st.TotalTime)
		st.Throughput = n / float64(st.TotalTime)
	}
	return st
}
