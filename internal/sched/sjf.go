package sched

import "github.com/emirpasic/gods/trees/binaryheap"

// sjfKey orders the SJF ready heap. index is the position in the
// arrival-sorted batch and breaks burst ties deterministically.
type sjfKey struct {
	burst int
	index int
}

// bySJFKey implements the Comparator interface for the binary heap.
func bySJFKey(a, b any) int {
	ka, kb := a.(sjfKey), b.(sjfKey)
	switch {
	case ka.burst < kb.burst:
		return -1
	case ka.burst > kb.burst:
		return 1
	case ka.index < kb.index:
		return -1
	case ka.index > kb.index:
		return 1
	default:
		return 0
	}
}

// runSJF is non-preemptive: once dispatched, a process runs to completion
// even if a shorter one arrives meanwhile.
func (s *simulation) runSJF() {
	ready := binaryheap.NewWith(bySJFKey)
	next := 0 // next not-yet-admitted index into s.procs

	push := func(i int) {
		s.admit(&s.procs[i])
		ready.Push(sjfKey{burst: s.procs[i].Burst, index: i})
	}

	for !ready.Empty() || next < len(s.procs) {
		// 1) nothing ready: admit the next arrival, idling up to it
		if ready.Empty() {
			s.idleUntil(s.procs[next].Arrival)
			push(next)
			next++
			continue
		}

		// 2) dispatch the shortest job
		v, _ := ready.Pop()
		s.dispatchToCompletion(&s.procs[v.(sjfKey).index])

		// 3) admit everything that arrived while it ran
		for next < len(s.procs) && s.procs[next].Arrival <= s.clock.Now() {
			push(next)
			next++
		}
	}
}
