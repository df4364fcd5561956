package sched_test

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

var ignoreUnexported = cmpopts.IgnoreUnexported(sched.Process{})

// row is the per-process tuple a presenter shows.
type row struct {
	PID        sched.PID
	Finish     int
	Waiting    int
	Turnaround int
	Response   int
}

func rows(res sched.Result) []row {
	out := make([]row, len(res.Processes))
	for i, p := range res.Processes {
		out[i] = row{p.PID, p.Finish, p.Waiting, p.Turnaround, p.Response}
	}
	return out
}

func TestSampleFixture(t *testing.T) {
	procs, cfg := workload.Sample()

	tests := []struct {
		alg       sched.Algorithm
		opts      sched.Options
		wantGantt []sched.GanttEntry
		wantRows  []row
		wantStats sched.Stats
	}{
		{
			alg:  sched.FCFS,
			opts: sched.DefaultOptions(),
			wantGantt: []sched.GanttEntry{
				{PID: 1, Start: 0, End: 9},
				{PID: 2, Start: 9, End: 14},
				{PID: 3, Start: 14, End: 24},
				{PID: 4, Start: 24, End: 30},
			},
			wantRows: []row{
				{1, 9, 0, 9, 0},
				{2, 14, 8, 13, 0},
				{3, 24, 12, 22, 0},
				{4, 30, 21, 27, 0},
			},
			wantStats: sched.Stats{
				AvgWaiting:     10.25,
				AvgTurnaround:  17.75,
				CPUUtilization: 26.0 / 30,
				Throughput:     4.0 / 30,
				TotalTime:      30,
				BusyTime:       26,
				SwitchTime:     4,
			},
		},
		{
			alg:  sched.SJF,
			opts: sched.DefaultOptions(),
			wantGantt: []sched.GanttEntry{
				{PID: 1, Start: 0, End: 9},
				{PID: 2, Start: 9, End: 14},
				{PID: 4, Start: 14, End: 20},
				{PID: 3, Start: 20, End: 30},
			},
			wantRows: []row{
				{1, 9, 0, 9, 0},
				{2, 14, 8, 13, 0},
				{3, 30, 18, 28, 0},
				{4, 20, 11, 17, 0},
			},
			wantStats: sched.Stats{
				AvgWaiting:     9.25,
				AvgTurnaround:  16.75,
				CPUUtilization: 26.0 / 30,
				Throughput:     4.0 / 30,
				TotalTime:      30,
				BusyTime:       26,
				SwitchTime:     4,
			},
		},
		{
			alg:  sched.RR,
			opts: sched.DefaultOptions(),
			wantGantt: []sched.GanttEntry{
				{PID: 1, Start: 0, End: 5},
				{PID: 2, Start: 5, End: 10},
				{PID: 3, Start: 10, End: 15},
				{PID: 4, Start: 15, End: 20},
				{PID: 1, Start: 20, End: 25},
				{PID: 3, Start: 25, End: 30},
				{PID: 4, Start: 30, End: 32},
				{PID: 3, Start: 32, End: 34},
			},
			wantRows: []row{
				{1, 25, 20, 25, 0},
				{2, 10, 4, 9, 4},
				{3, 34, 30, 32, 8},
				{4, 32, 27, 29, 12},
			},
			wantStats: sched.Stats{
				AvgWaiting:     20.25,
				AvgTurnaround:  23.75,
				AvgResponse:    6,
				HasResponse:    true,
				CPUUtilization: 26.0 / 34,
				Throughput:     4.0 / 34,
				TotalTime:      34,
				BusyTime:       26,
				SwitchTime:     8,
			},
		},
		{
			alg:  sched.RR,
			opts: sched.Options{RRWaiting: sched.WaitingCumulative},
			wantGantt: []sched.GanttEntry{
				{PID: 1, Start: 0, End: 5},
				{PID: 2, Start: 5, End: 10},
				{PID: 3, Start: 10, End: 15},
				{PID: 4, Start: 15, End: 20},
				{PID: 1, Start: 20, End: 25},
				{PID: 3, Start: 25, End: 30},
				{PID: 4, Start: 30, End: 32},
				{PID: 3, Start: 32, End: 34},
			},
			wantRows: []row{
				{1, 25, 15, 25, 0},
				{2, 10, 4, 9, 4},
				{3, 34, 20, 32, 8},
				{4, 32, 22, 29, 12},
			},
			wantStats: sched.Stats{
				AvgWaiting:     15.25,
				AvgTurnaround:  23.75,
				AvgResponse:    6,
				HasResponse:    true,
				CPUUtilization: 26.0 / 34,
				Throughput:     4.0 / 34,
				TotalTime:      34,
				BusyTime:       26,
				SwitchTime:     8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.alg.Short(), tt.opts.RRWaiting), func(t *testing.T) {
			res, err := sched.Simulate(tt.alg, procs, cfg, tt.opts)
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}
			if diff := cmp.Diff(tt.wantGantt, res.Gantt); diff != "" {
				t.Errorf("gantt mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRows, rows(res)); diff != "" {
				t.Errorf("per-process mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantStats, res.Stats, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("stats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimulateLeavesInputUntouched(t *testing.T) {
	procs, cfg := workload.Sample()
	before := append([]sched.Process(nil), procs...)

	if _, err := sched.SimulateAll(procs, cfg, sched.DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, procs, ignoreUnexported); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSimulateAllOrderIndependent(t *testing.T) {
	procs, cfg := workload.Sample()

	all, err := sched.SimulateAll(procs, cfg, sched.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i, alg := range sched.Algorithms {
		alone, err := sched.Simulate(alg, procs, cfg, sched.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(alone, all[i], ignoreUnexported); diff != "" {
			t.Errorf("%s differs when run after the others (-alone +all):\n%s", alg.Short(), diff)
		}
	}
}

func TestSimulateAllParallel(t *testing.T) {
	procs := workload.Random(42, 25, 40, 12)
	cfg := sched.RunConfig{ContextSwitch: 1, Quantum: 3}

	seq, err := sched.SimulateAll(procs, cfg, sched.Options{})
	if err != nil {
		t.Fatal(err)
	}
	par, err := sched.SimulateAll(procs, cfg, sched.Options{Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(seq, par, ignoreUnexported); diff != "" {
		t.Errorf("parallel run differs (-seq +par):\n%s", diff)
	}
}

func TestFCFSStableOnEqualArrivals(t *testing.T) {
	procs := []sched.Process{
		sched.NewProcess(2, 0, 2, 0),
		sched.NewProcess(1, 0, 3, 0),
	}
	res, err := sched.Simulate(sched.FCFS, procs, sched.RunConfig{}, sched.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []sched.GanttEntry{{PID: 2, Start: 0, End: 2}, {PID: 1, Start: 2, End: 5}}
	if diff := cmp.Diff(want, res.Gantt); diff != "" {
		t.Errorf("gantt mismatch (-want +got):\n%s", diff)
	}
}

func TestFCFSIdleGap(t *testing.T) {
	procs := []sched.Process{sched.NewProcess(1, 5, 2, 0)}
	res, err := sched.Simulate(sched.FCFS, procs, sched.RunConfig{}, sched.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]sched.GanttEntry{{PID: 1, Start: 5, End: 7}}, res.Gantt); diff != "" {
		t.Errorf("gantt mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.IdleTime != 5 || res.Stats.CPUUtilization != 2.0/7 {
		t.Errorf("got idle %d util %v, want 5 and %v", res.Stats.IdleTime, res.Stats.CPUUtilization, 2.0/7)
	}
	if res.Trace[0].Kind != sched.StatusIdle || res.Trace[0].Time != 0 {
		t.Errorf("first event = %+v, want idle at 0", res.Trace[0])
	}
}

func TestSJFTieBreaksOnArrivalIndex(t *testing.T) {
	// P3 is listed before P2 but arrives later, so P2 holds the smaller index.
	procs := []sched.Process{
		sched.NewProcess(1, 0, 5, 0),
		sched.NewProcess(3, 2, 3, 0),
		sched.NewProcess(2, 1, 3, 0),
	}
	res, err := sched.Simulate(sched.SJF, procs, sched.RunConfig{}, sched.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []sched.GanttEntry{
		{PID: 1, Start: 0, End: 5},
		{PID: 2, Start: 5, End: 8},
		{PID: 3, Start: 8, End: 11},
	}
	if diff := cmp.Diff(want, res.Gantt); diff != "" {
		t.Errorf("gantt mismatch (-want +got):\n%s", diff)
	}
}

func TestSJFAdmitsOneProcessWhenIdle(t *testing.T) {
	// With an empty ready heap only the next arrival is admitted, so the
	// longer job listed first wins even though a shorter one arrives with it.
	procs := []sched.Process{
		sched.NewProcess(1, 0, 10, 0),
		sched.NewProcess(2, 0, 2, 0),
	}
	res, err := sched.Simulate(sched.SJF, procs, sched.RunConfig{}, sched.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []sched.GanttEntry{{PID: 1, Start: 0, End: 10}, {PID: 2, Start: 10, End: 12}}
	if diff := cmp.Diff(want, res.Gantt); diff != "" {
		t.Errorf("gantt mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleProcessAllAgree(t *testing.T) {
	procs := []sched.Process{sched.NewProcess(9, 3, 4, 64)}
	cfg := sched.RunConfig{ContextSwitch: 2, Quantum: 4}

	results, err := sched.SimulateAll(procs, cfg, sched.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []sched.GanttEntry{{PID: 9, Start: 3, End: 9}}
	for _, res := range results {
		if diff := cmp.Diff(want, res.Gantt); diff != "" {
			t.Errorf("%s gantt mismatch (-want +got):\n%s", res.Algorithm.Short(), diff)
		}
		p := res.Processes[0]
		if p.Finish != 9 || p.Waiting != 0 || p.Turnaround != 6 {
			t.Errorf("%s: got finish %d waiting %d turnaround %d", res.Algorithm.Short(), p.Finish, p.Waiting, p.Turnaround)
		}
		if res.Stats.AvgWaiting != results[0].Stats.AvgWaiting || res.Stats.CPUUtilization != results[0].Stats.CPUUtilization {
			t.Errorf("%s stats differ from fcfs: %+v", res.Algorithm.Short(), res.Stats)
		}
	}
}

func TestProperties(t *testing.T) {
	for seed := int64(1); seed <= 60; seed++ {
		n := 1 + int(seed%12)
		procs := workload.Random(seed, n, 30, 10)
		cfg := sched.RunConfig{ContextSwitch: int(seed % 3), Quantum: 1 + int(seed%5)}

		for _, mode := range []sched.RRWaiting{sched.WaitingLastDispatch, sched.WaitingCumulative} {
			results, err := sched.SimulateAll(procs, cfg, sched.Options{RRWaiting: mode})
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			for _, res := range results {
				name := fmt.Sprintf("seed %d %s/%s", seed, res.Algorithm.Short(), mode)
				checkCommon(t, name, res)
				switch res.Algorithm {
				case sched.FCFS, sched.SJF:
					checkNonPreemptive(t, name, res, cfg)
				case sched.RR:
					checkRR(t, name, res, cfg, mode)
				}
			}
			checkSJFChoice(t, fmt.Sprintf("seed %d", seed), procs, results[1])
		}
	}
}

func checkCommon(t *testing.T, name string, res sched.Result) {
	t.Helper()
	burst := 0
	for _, p := range res.Processes {
		burst += p.Burst
		if p.Turnaround != p.Finish-p.Arrival {
			t.Errorf("%s pid %d: turnaround %d != finish %d - arrival %d", name, p.PID, p.Turnaround, p.Finish, p.Arrival)
		}
		if p.Remaining != 0 {
			t.Errorf("%s pid %d: %d units left", name, p.PID, p.Remaining)
		}
	}
	if res.Stats.AvgWaiting < 0 {
		t.Errorf("%s: negative average waiting %v", name, res.Stats.AvgWaiting)
	}
	if u := res.Stats.CPUUtilization; u <= 0 || u > 1 {
		t.Errorf("%s: utilization %v out of (0, 1]", name, u)
	}
	st := res.Stats
	if st.BusyTime != burst {
		t.Errorf("%s: busy time %d, want burst sum %d", name, st.BusyTime, burst)
	}
	if st.BusyTime+st.IdleTime+st.SwitchTime != st.TotalTime {
		t.Errorf("%s: busy %d + idle %d + switch %d != total %d", name, st.BusyTime, st.IdleTime, st.SwitchTime, st.TotalTime)
	}
	for i := 1; i < len(res.Gantt); i++ {
		if res.Gantt[i].Start < res.Gantt[i-1].End {
			t.Errorf("%s: entry %d %+v overlaps %+v", name, i, res.Gantt[i], res.Gantt[i-1])
		}
	}
}

func checkNonPreemptive(t *testing.T, name string, res sched.Result, cfg sched.RunConfig) {
	t.Helper()
	if len(res.Gantt) != len(res.Processes) {
		t.Errorf("%s: %d gantt entries for %d processes", name, len(res.Gantt), len(res.Processes))
	}
	for _, p := range res.Processes {
		if p.Waiting != p.Turnaround-p.Burst-cfg.ContextSwitch {
			t.Errorf("%s pid %d: waiting %d != turnaround %d - burst %d - switch %d",
				name, p.PID, p.Waiting, p.Turnaround, p.Burst, cfg.ContextSwitch)
		}
	}
}

func checkRR(t *testing.T, name string, res sched.Result, cfg sched.RunConfig, mode sched.RRWaiting) {
	t.Helper()
	ran := make(map[sched.PID]int)
	for _, g := range res.Gantt {
		d := g.End - g.Start - cfg.ContextSwitch
		if d <= 0 || d > cfg.Quantum {
			t.Errorf("%s: slice %+v runs %d, quantum %d", name, g, d, cfg.Quantum)
		}
		ran[g.PID] += d
	}
	for _, p := range res.Processes {
		if ran[p.PID] != p.Burst {
			t.Errorf("%s pid %d: ran %d of burst %d", name, p.PID, ran[p.PID], p.Burst)
		}
		if p.Response < 0 || p.Response > p.Start-p.Arrival {
			t.Errorf("%s pid %d: response %d out of range", name, p.PID, p.Response)
		}
		if mode == sched.WaitingCumulative && p.Waiting != p.Turnaround-p.Burst-p.Dispatches*cfg.ContextSwitch {
			t.Errorf("%s pid %d: cumulative waiting %d != turnaround %d - burst %d - %d switches",
				name, p.PID, p.Waiting, p.Turnaround, p.Burst, p.Dispatches)
		}
		if mode == sched.WaitingLastDispatch && p.Waiting != p.Start-p.Arrival {
			t.Errorf("%s pid %d: waiting %d != last start %d - arrival %d", name, p.PID, p.Waiting, p.Start, p.Arrival)
		}
	}
}

// checkSJFChoice replays the SJF trace and checks every dispatch picked the
// smallest (burst, arrival index) among the processes ready at that moment.
func checkSJFChoice(t *testing.T, name string, procs []sched.Process, res sched.Result) {
	t.Helper()

	sorted := append([]sched.Process(nil), procs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Arrival < sorted[j].Arrival })
	index := make(map[sched.PID]int, len(sorted))
	burst := make(map[sched.PID]int, len(sorted))
	for i, p := range sorted {
		index[p.PID] = i
		burst[p.PID] = p.Burst
	}

	ready := make(map[sched.PID]bool)
	for _, ev := range res.Trace {
		switch ev.Kind {
		case sched.StatusEnqueue:
			ready[ev.PID] = true
		case sched.StatusDispatch:
			for other := range ready {
				if burst[other] < burst[ev.PID] || (burst[other] == burst[ev.PID] && index[other] < index[ev.PID]) {
					t.Errorf("%s sjf: dispatched pid %d at %d while pid %d was ready", name, ev.PID, ev.Time, other)
				}
			}
			delete(ready, ev.PID)
		}
	}
}

func TestValidation(t *testing.T) {
	good := []sched.Process{sched.NewProcess(1, 0, 3, 0)}

	tests := []struct {
		name  string
		alg   sched.Algorithm
		procs []sched.Process
		cfg   sched.RunConfig
		opts  sched.Options
		field string
	}{
		{name: "zero burst", alg: sched.FCFS, procs: []sched.Process{sched.NewProcess(1, 0, 0, 0)}, cfg: sched.RunConfig{Quantum: 1}, field: "burst of pid 1"},
		{name: "negative arrival", alg: sched.SJF, procs: []sched.Process{sched.NewProcess(1, -1, 2, 0)}, field: "arrival of pid 1"},
		{name: "zero quantum", alg: sched.RR, procs: good, cfg: sched.RunConfig{Quantum: 0}, field: "quantum"},
		{name: "negative switch", alg: sched.FCFS, procs: good, cfg: sched.RunConfig{ContextSwitch: -1}, field: "context switch"},
		{name: "duplicate pid", alg: sched.FCFS, procs: append(good, sched.NewProcess(1, 1, 1, 0)), field: "pid"},
		{name: "unknown rr waiting", alg: sched.RR, procs: good, cfg: sched.RunConfig{Quantum: 2}, opts: sched.Options{RRWaiting: "total"}, field: "rr_waiting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sched.Simulate(tt.alg, tt.procs, tt.cfg, tt.opts)
			var ce *sched.InvalidConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want InvalidConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestQuantumOnlyRequiredByRR(t *testing.T) {
	procs := []sched.Process{sched.NewProcess(1, 0, 3, 0)}
	if _, err := sched.Simulate(sched.FCFS, procs, sched.RunConfig{}, sched.DefaultOptions()); err != nil {
		t.Errorf("fcfs without quantum: %v", err)
	}
	if _, err := sched.SimulateAll(procs, sched.RunConfig{}, sched.DefaultOptions()); err == nil {
		t.Error("SimulateAll without quantum: want error")
	}
}

func TestEmptyInput(t *testing.T) {
	for _, alg := range sched.Algorithms {
		_, err := sched.Simulate(alg, nil, sched.RunConfig{Quantum: 1}, sched.DefaultOptions())
		if !errors.Is(err, sched.ErrEmptyInput) {
			t.Errorf("%s: want ErrEmptyInput, got %v", alg.Short(), err)
		}
		var ee sched.EmptyInputError
		if !errors.As(err, &ee) {
			t.Errorf("%s: want EmptyInputError, got %T", alg.Short(), err)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range sched.Algorithms {
		got, err := sched.ParseAlgorithm(alg.Short())
		if err != nil || got != alg {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", alg.Short(), got, err)
		}
	}
	if got, err := sched.ParseAlgorithm("SJF"); err != nil || got != sched.SJF {
		t.Errorf("ParseAlgorithm is case sensitive: %v, %v", got, err)
	}
	if _, err := sched.ParseAlgorithm("mlfq"); err == nil {
		t.Error("ParseAlgorithm(mlfq): want error")
	}
}
