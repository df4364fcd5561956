package sched

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// runRR is preemptive Round Robin with a fixed quantum and a FIFO ready
// queue. A slice's Gantt entry ends after its context switch.
func (s *simulation) runRR() {
	ready := linkedlistqueue.New() // indices into s.procs
	next := 0
	done := 0

	enqueue := func(i, readyAt int) {
		s.procs[i].readyAt = readyAt
		s.admit(&s.procs[i])
		ready.Enqueue(i)
	}
	arrive := func(i int) { enqueue(i, s.procs[i].Arrival) }

	for done < len(s.procs) {
		// 1) nothing ready: admit the next arrival, idling up to it
		if ready.Empty() {
			s.idleUntil(s.procs[next].Arrival)
			arrive(next)
			next++
			continue
		}

		// 2) dispatch the head for at most one quantum
		v, _ := ready.Dequeue()
		p := &s.procs[v.(int)]
		now := s.clock.Now()
		if !p.executed {
			p.Response = now - p.Arrival
			p.executed = true
		}
		p.Start = now
		p.Dispatches++
		p.Waiting += now - p.readyAt // cumulative, replaced below unless configured
		s.trace.emit(now, StatusDispatch, p)

		runTime := min(p.Remaining, s.cfg.Quantum)
		s.clock.Run(runTime, s.cfg.ContextSwitch)
		p.Remaining -= runTime
		s.gantt = append(s.gantt, GanttEntry{PID: p.PID, Start: p.Start, End: s.clock.Now()})

		// 3) newcomers queue up ahead of the preempted process
		for next < len(s.procs) && s.procs[next].Arrival <= s.clock.Now() {
			arrive(next)
			next++
		}

		// 4) requeue or finish
		if p.Remaining > 0 {
			s.trace.emit(s.clock.Now(), StatusPreempt, p)
			enqueue(v.(int), s.clock.Now())
			continue
		}
		p.Finish = s.clock.Now()
		p.Turnaround = p.Finish - p.Arrival
		if s.opts.RRWaiting != WaitingCumulative {
			p.Waiting = p.Start - p.Arrival
		}
		s.trace.emit(p.Finish, StatusFinish, p)
		done++
	}
}
