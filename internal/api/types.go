package api

import (
	"errors"
	"fmt"

	"schedsim/internal/sched"
)

var errMissingField = errors.New("required field missing")

// ProcessRequest uses pointers so that missing fields can be told apart
// from zero values.
type ProcessRequest struct {
	PID         *int `json:"pid"`
	ArrivalTime *int `json:"arrival_time"`
	CPUBurst    *int `json:"cpu_burst"`
	Size        int  `json:"size"`
}

type ScheduleRequest struct {
	ContextSwitch int              `json:"context_switch"`
	Quantum       int              `json:"quantum"`
	Processes     []ProcessRequest `json:"processes"`
}

type ProcessResponse struct {
	PID            int  `json:"pid"`
	ArrivalTime    int  `json:"arrival_time"`
	CPUBurst       int  `json:"cpu_burst"`
	FinishTime     int  `json:"finish_time"`
	WaitingTime    int  `json:"waiting_time"`
	TurnaroundTime int  `json:"turnaround_time"`
	ResponseTime   *int `json:"response_time,omitempty"`
}

// StatsResponse carries average_response_time for RR even when it is 0 and
// leaves it out for the non-preemptive algorithms.
type StatsResponse struct {
	AvgWaiting     float64  `json:"average_waiting_time"`
	AvgTurnaround  float64  `json:"average_turnaround_time"`
	AvgResponse    *float64 `json:"average_response_time,omitempty"`
	CPUUtilization float64  `json:"cpu_utilization"`
	Throughput     float64  `json:"throughput"`
	TotalTime      int      `json:"total_time"`
	BusyTime       int      `json:"busy_time"`
	IdleTime       int      `json:"idle_time"`
	SwitchTime     int      `json:"context_switch_time"`
}

// TraceEventResponse is one status event. Idle events have no pid, like the
// blank pid column of the trace CSV.
type TraceEventResponse struct {
	Time      int    `json:"time"`
	Event     string `json:"event"`
	PID       *int   `json:"pid,omitempty"`
	Remaining int    `json:"remaining"`
}

type ScheduleResponse struct {
	Algorithm string               `json:"algorithm"`
	Quantum   int                  `json:"quantum,omitempty"`
	Gantt     []sched.GanttEntry   `json:"gantt"`
	Details   []ProcessResponse    `json:"details"`
	Stats     StatsResponse        `json:"stats"`
	Trace     []TraceEventResponse `json:"trace,omitempty"`
}

// toProcesses checks every required field is present and converts the
// request for the engine.
func (r *ScheduleRequest) toProcesses() ([]sched.Process, error) {
	procs := make([]sched.Process, 0, len(r.Processes))
	for i, p := range r.Processes {
		switch {
		case p.PID == nil:
			return nil, missing(i, "pid")
		case p.ArrivalTime == nil:
			return nil, missing(i, "arrival_time")
		case p.CPUBurst == nil:
			return nil, missing(i, "cpu_burst")
		}
		procs = append(procs, sched.NewProcess(sched.PID(*p.PID), *p.ArrivalTime, *p.CPUBurst, p.Size))
	}
	return procs, nil
}

func missing(i int, field string) error {
	return &sched.InputFormatError{
		Field: fmt.Sprintf("processes[%d].%s", i, field),
		Err:   errMissingField,
	}
}

func newScheduleResponse(res sched.Result, withTrace bool) ScheduleResponse {
	out := ScheduleResponse{
		Algorithm: res.Algorithm.Short(),
		Quantum:   res.Quantum,
		Gantt:     res.Gantt,
		Details:   make([]ProcessResponse, len(res.Processes)),
		Stats:     newStatsResponse(res.Stats),
	}
	if withTrace {
		out.Trace = newTraceResponse(res.Trace)
	}
	for i, p := range res.Processes {
		d := ProcessResponse{
			PID:            int(p.PID),
			ArrivalTime:    p.Arrival,
			CPUBurst:       p.Burst,
			FinishTime:     p.Finish,
			WaitingTime:    p.Waiting,
			TurnaroundTime: p.Turnaround,
		}
		if res.Stats.HasResponse {
			rt := p.Response
			d.ResponseTime = &rt
		}
		out.Details[i] = d
	}
	return out
}

func newStatsResponse(st sched.Stats) StatsResponse {
	out := StatsResponse{
		AvgWaiting:     st.AvgWaiting,
		AvgTurnaround:  st.AvgTurnaround,
		CPUUtilization: st.CPUUtilization,
		Throughput:     st.Throughput,
		TotalTime:      st.TotalTime,
		BusyTime:       st.BusyTime,
		IdleTime:       st.IdleTime,
		SwitchTime:     st.SwitchTime,
	}
	if st.HasResponse {
		avg := st.AvgResponse
		out.AvgResponse = &avg
	}
	return out
}

func newTraceResponse(events []sched.StatusEvent) []TraceEventResponse {
	out := make([]TraceEventResponse, len(events))
	for i, ev := range events {
		out[i] = TraceEventResponse{
			Time:      ev.Time,
			Event:     ev.Kind.String(),
			Remaining: ev.Remaining,
		}
		if ev.HasProcess() {
			pid := int(ev.PID)
			out[i].PID = &pid
		}
	}
	return out
}
