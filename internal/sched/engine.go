// internal/sched/engine.go

package sched

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Algorithm names one of the supported scheduling disciplines.
type Algorithm int

const (
	FCFS Algorithm = iota
	SJF
	RR
)

// Algorithms lists every discipline in presentation order.
var Algorithms = []Algorithm{FCFS, SJF, RR}

func (a Algorithm) String() string {
	switch a {
	case FCFS:
		return "First Come First Serve (FCFS)"
	case SJF:
		return "Shortest Job First (SJF) (non-preemptive)"
	case RR:
		return "Round Robin (RR)"
	default:
		return "Unknown"
	}
}

// Short returns the lower-case identifier used in URLs and trace files.
func (a Algorithm) Short() string {
	switch a {
	case FCFS:
		return "fcfs"
	case SJF:
		return "sjf"
	case RR:
		return "rr"
	default:
		return "unknown"
	}
}

// ParseAlgorithm is the inverse of Short. Matching ignores case.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if strings.EqualFold(s, a.Short()) {
			return a, nil
		}
	}
	return 0, &InvalidConfigError{Field: "algorithm", Value: s, Reason: "want fcfs, sjf or rr"}
}

// Result is everything one run produces.
type Result struct {
	Algorithm Algorithm
	Quantum   int // RR only
	Gantt     []GanttEntry
	Processes []Process // arrival order
	Trace     []StatusEvent
	Stats     Stats
}

// simulation holds the state of one run. Nothing in it is shared with any
// other run.
type simulation struct {
	cfg   RunConfig
	opts  Options
	procs []Process // private clone, sorted by arrival
	clock Clock
	gantt []GanttEntry
	trace trace
}

func newSimulation(procs []Process, cfg RunConfig, opts Options) *simulation {
	s := &simulation{
		cfg:   cfg,
		opts:  opts,
		procs: clone(procs),
	}
	// stable: equal arrivals keep input order
	sort.SliceStable(s.procs, func(i, j int) bool {
		return s.procs[i].Arrival < s.procs[j].Arrival
	})
	return s
}

// admit records that p entered the ready set.
func (s *simulation) admit(p *Process) {
	s.trace.emit(s.clock.Now(), StatusEnqueue, p)
}

// idleUntil moves the clock up to t, recording an idle event if the CPU had
// nothing to do.
func (s *simulation) idleUntil(t int) {
	from := s.clock.Now()
	if s.clock.IdleUntil(t) {
		s.trace.emit(from, StatusIdle, nil)
	}
}

func (s *simulation) run(alg Algorithm) Result {
	switch alg {
	case FCFS:
		s.runFCFS()
	case SJF:
		s.runSJF()
	case RR:
		s.runRR()
	}

	res := Result{
		Algorithm: alg,
		Gantt:     s.gantt,
		Processes: s.procs,
		Trace:     s.trace,
		Stats:     aggregate(s.procs, &s.clock, alg == RR),
	}
	if alg == RR {
		res.Quantum = s.cfg.Quantum
	}
	return res
}

// Simulate validates the batch and runs one algorithm on a private copy of
// procs. procs itself is left untouched.
func Simulate(alg Algorithm, procs []Process, cfg RunConfig, opts Options) (Result, error) {
	if alg < FCFS || alg > RR {
		return Result{}, &InvalidConfigError{Field: "algorithm", Value: int(alg), Reason: "unknown"}
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := validate(procs, cfg, alg == RR); err != nil {
		return Result{}, fmt.Errorf("%s: %w", alg.Short(), err)
	}
	return newSimulation(procs, cfg, opts).run(alg), nil
}

// SimulateAll runs FCFS, SJF and RR and returns their results in that
// order. With opts.Parallel every run gets its own goroutine.
func SimulateAll(procs []Process, cfg RunConfig, opts Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validate(procs, cfg, true); err != nil {
		return nil, err
	}

	results := make([]Result, len(Algorithms))
	if !opts.Parallel {
		for i, alg := range Algorithms {
			results[i] = newSimulation(procs, cfg, opts).run(alg)
		}
		return results, nil
	}

	var wg sync.WaitGroup
	for i, alg := range Algorithms {
		wg.Add(1)
		go func(i int, alg Algorithm) {
			defer wg.Done()
			results[i] = newSimulation(procs, cfg, opts).run(alg)
		}(i, alg)
	}
	wg.Wait()
	return results, nil
}
