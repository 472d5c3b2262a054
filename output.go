package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor  = color.New(color.Bold, color.FgCyan)
	winnerColor = color.New(color.Bold, color.FgGreen).SprintFunc()
	noteColor   = color.New(color.Faint).SprintFunc()
)

// scheduleTitle names a run, adding the quantum for round robin.
func scheduleTitle(s Schedule) string {
	if s.Algorithm == RoundRobin {
		return fmt.Sprintf("%s (q=%d)", s.Algorithm.Title(), s.Quantum)
	}
	return s.Algorithm.Title()
}

// printSchedule outputs a schedule as a GANTT chart and a table of timing,
// processes listed by id.
func printSchedule(w io.Writer, s Schedule) error {
	m, err := Summarize(s)
	if err != nil {
		return err
	}

	procs := s.Processes.ByID()
	rows := make([][]string, len(procs))
	for i, p := range procs {
		rows[i] = []string{
			fmt.Sprint(p.ProcessID),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.BurstDuration),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.WaitingTime),
			fmt.Sprint(p.TurnaroundTime),
			fmt.Sprint(p.CompletionTime),
		}
	}

	outputTitle(w, scheduleTitle(s))
	outputGantt(w, s.Gantt)
	outputSchedule(w, rows, m)
	return nil
}

// printComparison outputs the per-algorithm averages followed by the rankings.
func printComparison(w io.Writer, c Comparison) {
	outputTitle(w, "Algorithm comparison")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg wait", "Avg turnaround", "Score"})
	for _, r := range c.Results {
		table.Append([]string{
			scheduleTitle(r.Schedule),
			fmt.Sprintf("%.2f", r.Metrics.AverageWaiting),
			fmt.Sprintf("%.2f", r.Metrics.AverageTurnaround),
			fmt.Sprintf("%.2f", r.Score()),
		})
	}
	table.Render()

	rankings := []struct {
		label string
		alg   Algorithm
		value func(Result) float64
	}{
		{"Best for waiting time", c.BestWaiting, func(r Result) float64 { return r.Metrics.AverageWaiting }},
		{"Best for turnaround time", c.BestTurnaround, func(r Result) float64 { return r.Metrics.AverageTurnaround }},
		{"Overall best", c.BestOverall, Result.Score},
	}
	_, _ = fmt.Fprintln(w)
	for _, rk := range rankings {
		r, _ := c.Result(rk.alg)
		_, _ = fmt.Fprintf(w, "%s: %s (%.2f)\n", rk.label, winnerColor(rk.alg.Title()), rk.value(r))
	}
	_, _ = fmt.Fprintf(w, "%s\n", noteColor(c.BestOverall.Title()+": "+c.BestOverall.Rationale()))
}

//region Output helpers

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = titleColor.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// outputGantt prints one cell per slice; an idle gap between slices gets a "-" cell.
func outputGantt(w io.Writer, gantt []TimeSlice) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(gantt) == 0 {
		_, _ = fmt.Fprintf(w, "(empty)\n\n")
		return
	}

	type cell struct {
		label string
		start int64
	}
	cells := make([]cell, 0, len(gantt))
	for i := range gantt {
		if i > 0 && gantt[i-1].Stop < gantt[i].Start {
			cells = append(cells, cell{"-", gantt[i-1].Stop})
		}
		cells = append(cells, cell{fmt.Sprint(gantt[i].PID), gantt[i].Start})
	}

	_, _ = fmt.Fprint(w, "|")
	for _, c := range cells {
		padding := strings.Repeat(" ", (8-len(c.label))/2)
		_, _ = fmt.Fprint(w, padding, c.label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for _, c := range cells {
		_, _ = fmt.Fprint(w, fmt.Sprint(c.start), "\t")
	}
	_, _ = fmt.Fprint(w, fmt.Sprint(gantt[len(gantt)-1].Stop))
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, rows [][]string, m Metrics) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AverageWaiting),
		fmt.Sprintf("Average\n%.2f", m.AverageTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", m.Throughput)})
	table.Render()
}

//endregion
