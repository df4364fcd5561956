package sched

// runFCFS dispatches processes in arrival order, each to completion.
func (s *simulation) runFCFS() {
	for i := range s.procs {
		p := &s.procs[i]
		s.idleUntil(p.Arrival)
		s.admit(p)
		s.dispatchToCompletion(p)
	}
}

// dispatchToCompletion runs p without preemption. Shared by FCFS and SJF.
func (s *simulation) dispatchToCompletion(p *Process) {
	p.Start = s.clock.Now()
	p.Dispatches++
	s.trace.emit(p.Start, StatusDispatch, p)

	s.clock.Run(p.Burst, s.cfg.ContextSwitch)
	p.Remaining = 0
	p.Finish = s.clock.Now()
	p.Waiting = p.Start - p.Arrival
	p.Turnaround = p.Finish - p.Arrival

	s.gantt = append(s.gantt, GanttEntry{PID: p.PID, Start: p.Start, End: p.Finish})
	s.trace.emit(p.Finish, StatusFinish, p)
}
