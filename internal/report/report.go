// Package report renders simulation results for a terminal: a title banner,
// a text Gantt chart and a per-process table with the averages in its footer.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"schedsim/internal/sched"
)

// WriteAll renders every result in order, separated by a blank line.
func WriteAll(w io.Writer, results []sched.Result) {
	for i, res := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		Write(w, res)
	}
}

// Write renders one result.
func Write(w io.Writer, res sched.Result) {
	title := res.Algorithm.String()
	if res.Algorithm == sched.RR {
		title = fmt.Sprintf("%s with quantum %d", title, res.Quantum)
	}
	outputTitle(w, title)
	outputGantt(w, res.Gantt)
	outputSchedule(w, res)
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
	_, _ = fmt.Fprintln(w, " ", title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
}

// outputGantt prints one cell per dispatch with the time axis underneath.
// Gaps where the CPU sat idle get a cell of their own.
func outputGantt(w io.Writer, gantt []sched.GanttEntry) {
	_, _ = fmt.Fprintln(w, "Gantt Chart:")
	if len(gantt) == 0 {
		_, _ = fmt.Fprintln(w, "(empty)")
		return
	}

	type cell struct {
		label string
		start int
	}
	cells := make([]cell, 0, len(gantt))
	prevEnd := 0
	for _, g := range gantt {
		if g.Start > prevEnd {
			cells = append(cells, cell{"idle", prevEnd})
		}
		cells = append(cells, cell{"P" + strconv.Itoa(int(g.PID)), g.Start})
		prevEnd = g.End
	}

	var bar, axis strings.Builder
	bar.WriteString("|")
	for _, c := range cells {
		start := strconv.Itoa(c.start)
		width := max(len(c.label)+2, len(start)+1, 6)
		pad := width - len(c.label)
		bar.WriteString(strings.Repeat(" ", pad/2) + c.label + strings.Repeat(" ", pad-pad/2) + "|")
		axis.WriteString(start + strings.Repeat(" ", width+1-len(start)))
	}
	axis.WriteString(strconv.Itoa(prevEnd))

	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, axis.String())
	_, _ = fmt.Fprintln(w)
}

func outputSchedule(w io.Writer, res sched.Result) {
	st := res.Stats

	header := []string{"PID", "Arrival", "Burst", "Finish", "Waiting", "Turnaround"}
	if st.HasResponse {
		header = append(header, "Response")
	}

	rows := make([][]string, 0, len(res.Processes))
	for _, p := range res.Processes {
		row := []string{
			strconv.Itoa(int(p.PID)),
			strconv.Itoa(p.Arrival),
			strconv.Itoa(p.Burst),
			strconv.Itoa(p.Finish),
			strconv.Itoa(p.Waiting),
			strconv.Itoa(p.Turnaround),
		}
		if st.HasResponse {
			row = append(row, strconv.Itoa(p.Response))
		}
		rows = append(rows, row)
	}

	footer := []string{
		"",
		fmt.Sprintf("Total\n%d", st.TotalTime),
		fmt.Sprintf("CPU util\n%.2f%%", st.CPUUtilization*100),
		fmt.Sprintf("Throughput\n%.3f/t", st.Throughput),
		fmt.Sprintf("Average\n%.2f", st.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", st.AvgTurnaround),
	}
	if st.HasResponse {
		footer = append(footer, fmt.Sprintf("Average\n%.2f", st.AvgResponse))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.SetFooter(footer)
	table.Render()
}
