package workload

import (
	"math/rand"

	"schedsim/internal/sched"
)

// Sample returns the four-process batch used throughout the docs and tests.
func Sample() ([]sched.Process, sched.RunConfig) {
	procs := []sched.Process{
		sched.NewProcess(1, 0, 8, 0),
		sched.NewProcess(2, 1, 4, 0),
		sched.NewProcess(3, 2, 9, 0),
		sched.NewProcess(4, 3, 5, 0),
	}
	return procs, sched.RunConfig{ContextSwitch: 1, Quantum: 4}
}

// Random returns n processes with arrivals in [0, maxArrival] and bursts in
// [1, maxBurst]. The same seed always yields the same batch, in shuffled
// (not arrival) order.
func Random(seed int64, n, maxArrival, maxBurst int) []sched.Process {
	rng := rand.New(rand.NewSource(seed))

	procs := make([]sched.Process, n)
	for i := range procs {
		procs[i] = sched.NewProcess(
			sched.PID(i+1),
			rng.Intn(maxArrival+1),
			1+rng.Intn(maxBurst),
			rng.Intn(1024),
		)
	}
	return procs
}
