// Package input reads a process batch from its plain-text form:
//
//	<contextSwitch> <quantum>
//	<pid> <arrival> <burst> <size>
//	...
//
// Blank lines and lines starting with '#' are ignored.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"schedsim/internal/sched"
)

var (
	headerFields  = []string{"context_switch", "quantum"}
	processFields = []string{"pid", "arrival", "burst", "size"}

	errFieldCount = errors.New("wrong number of fields")
	errNoHeader   = errors.New("missing context switch / quantum line")
)

// Load opens path and parses it.
func Load(path string) ([]sched.Process, sched.RunConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sched.RunConfig{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the header line and one process per following line. The
// processes are returned in input order.
func Parse(r io.Reader) ([]sched.Process, sched.RunConfig, error) {
	var (
		cfg     sched.RunConfig
		procs   []sched.Process
		header  bool
		lineNum int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !header {
			vals, err := ints(lineNum, line, headerFields)
			if err != nil {
				return nil, cfg, err
			}
			cfg.ContextSwitch, cfg.Quantum = vals[0], vals[1]
			header = true
			continue
		}

		vals, err := ints(lineNum, line, processFields)
		if err != nil {
			return nil, cfg, err
		}
		procs = append(procs, sched.NewProcess(sched.PID(vals[0]), vals[1], vals[2], vals[3]))
	}
	if err := sc.Err(); err != nil {
		return nil, cfg, fmt.Errorf("read input: %w", err)
	}
	if !header {
		return nil, cfg, &sched.InputFormatError{Err: errNoHeader}
	}
	return procs, cfg, nil
}

func ints(lineNum int, line string, names []string) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != len(names) {
		return nil, &sched.InputFormatError{
			Line: lineNum,
			Err:  fmt.Errorf("%w: got %d, want %d (%s)", errFieldCount, len(fields), len(names), strings.Join(names, " ")),
		}
	}

	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &sched.InputFormatError{Line: lineNum, Field: names[i], Err: err}
		}
		vals[i] = v
	}
	return vals, nil
}
