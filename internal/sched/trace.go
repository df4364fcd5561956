package sched

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteTraceCSV writes every recorded event of results as CSV.
func WriteTraceCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	// write header
	if err := cw.Write([]string{"time", "event", "pid", "remaining", "algorithm"}); err != nil {
		return err
	}
	for _, res := range results {
		for _, ev := range res.Trace {
			pid := ""
			if ev.HasProcess() {
				pid = strconv.Itoa(int(ev.PID))
			}
			rec := []string{
				strconv.Itoa(ev.Time),
				ev.Kind.String(),
				pid,
				strconv.Itoa(ev.Remaining),
				res.Algorithm.Short(),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTraceCSV creates path and writes the trace of results into it.
func SaveTraceCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	if err := WriteTraceCSV(f, results); err != nil {
		f.Close()
		return fmt.Errorf("write trace %s: %w", path, err)
	}
	return f.Close()
}
