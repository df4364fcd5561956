package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// RunConfig is the per-batch configuration that comes with the input.
type RunConfig struct {
	ContextSwitch int // overhead added after every dispatch
	Quantum       int // RR time slice
}

// RRWaiting selects how Round Robin derives a process's waiting time.
type RRWaiting string

const (
	// WaitingLastDispatch uses the start of the final slice only.
	WaitingLastDispatch RRWaiting = "last_dispatch"
	// WaitingCumulative sums every interval spent in the ready queue.
	WaitingCumulative RRWaiting = "cumulative"
)

// Options mirrors the YAML options file.
type Options struct {
	Parallel  bool      `yaml:"parallel"`   // run the algorithms concurrently
	RRWaiting RRWaiting `yaml:"rr_waiting"` // last_dispatch (by default)
	TraceCSV  string    `yaml:"trace_csv"`  // empty = no trace file
	ChartPNG  string    `yaml:"chart_png"`  // empty = no chart
}

// DefaultOptions reproduces the reference behaviour.
func DefaultOptions() Options {
	return Options{
		RRWaiting: WaitingLastDispatch,
	}
}

// LoadOptions reads YAML and overrides defaults; empty path or a missing
// file = defaults only.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}

	if opts.RRWaiting == "" {
		opts.RRWaiting = WaitingLastDispatch
	}
	return opts, opts.Validate()
}

// Validate rejects option values the engine does not know.
func (o Options) Validate() error {
	switch o.RRWaiting {
	case WaitingLastDispatch, WaitingCumulative, "":
		return nil
	default:
		return &InvalidConfigError{Field: "rr_waiting", Value: o.RRWaiting, Reason: "want last_dispatch or cumulative"}
	}
}

// validate checks the batch before any simulation starts.
func validate(procs []Process, cfg RunConfig, needQuantum bool) error {
	if len(procs) == 0 {
		return EmptyInputError{}
	}
	if cfg.ContextSwitch < 0 {
		return &InvalidConfigError{Field: "context switch", Value: cfg.ContextSwitch, Reason: "must be >= 0"}
	}
	if needQuantum && cfg.Quantum <= 0 {
		return &InvalidConfigError{Field: "quantum", Value: cfg.Quantum, Reason: "must be > 0"}
	}

	seen := make(map[PID]struct{}, len(procs))
	for _, p := range procs {
		if _, dup := seen[p.PID]; dup {
			return &InvalidConfigError{Field: "pid", Value: p.PID, Reason: "duplicate"}
		}
		seen[p.PID] = struct{}{}

		if p.Burst <= 0 {
			return &InvalidConfigError{Field: fmt.Sprintf("burst of pid %d", p.PID), Value: p.Burst, Reason: "must be > 0"}
		}
		if p.Arrival < 0 {
			return &InvalidConfigError{Field: fmt.Sprintf("arrival of pid %d", p.PID), Value: p.Arrival, Reason: "must be >= 0"}
		}
	}
	return nil
}
