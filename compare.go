package main

import (
	"fmt"
	"strings"
)

// DefaultQuantum is the round robin quantum used by comparisons when none is given.
const DefaultQuantum = 2

// Algorithm identifies a scheduler. Declaration order breaks ranking ties.
type Algorithm int

const (
	FCFS Algorithm = iota
	SJF
	Priority
	RoundRobin
)

// Algorithms lists every scheduler in declaration order.
var Algorithms = []Algorithm{FCFS, SJF, Priority, RoundRobin}

var algorithmInfo = map[Algorithm]struct {
	name, title, rationale string
}{
	FCFS: {
		"fcfs", "First-come, first-serve",
		"simple and fair with no starvation, but may not be optimal for varying burst times",
	},
	SJF: {
		"sjf", "Shortest-job-first",
		"optimal average waiting for non-preemptive scheduling, but may starve long processes",
	},
	Priority: {
		"priority", "Priority",
		"runs important processes first, but may starve low-priority processes",
	},
	RoundRobin: {
		"rr", "Round-robin",
		"good response time and fairness, but performance depends on the time quantum",
	},
}

func (a Algorithm) String() string {
	if info, ok := algorithmInfo[a]; ok {
		return info.name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Title is the human-readable name used in headings.
func (a Algorithm) Title() string {
	return algorithmInfo[a].title
}

// Rationale is a one-line note on why a winning algorithm tends to win.
func (a Algorithm) Rationale() string {
	return algorithmInfo[a].rationale
}

// ParseAlgorithm accepts the short names printed by String.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Algorithms {
		if a.String() == s {
			return a, nil
		}
	}
	switch s {
	case "round-robin", "roundrobin":
		return RoundRobin, nil
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidArgs, s)
}

type (
	// Result is one algorithm's run inside a comparison.
	Result struct {
		Schedule Schedule
		Metrics  Metrics
	}
	Comparison struct {
		Quantum        int64
		Results        []Result // in Algorithms order
		BestWaiting    Algorithm
		BestTurnaround Algorithm
		BestOverall    Algorithm
	}
)

// Score is the mean of the two averages; lower is better.
func (r Result) Score() float64 {
	return (r.Metrics.AverageWaiting + r.Metrics.AverageTurnaround) / 2
}

// Compare runs every algorithm against its own snapshot of processes and ranks
// them by average waiting time, average turnaround time, and overall score.
// A zero quantum selects DefaultQuantum.
func Compare(processes Batch, quantum int64) (Comparison, error) {
	if quantum == 0 {
		quantum = DefaultQuantum
	}
	if quantum < 0 {
		return Comparison{}, fmt.Errorf("%w: quantum must be positive, got %d", ErrInvalidParameter, quantum)
	}
	if err := processes.Validate(); err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		Quantum: quantum,
		Results: make([]Result, 0, len(Algorithms)),
	}
	for _, alg := range Algorithms {
		s, err := Run(alg, processes.Reset(), quantum)
		if err != nil {
			return Comparison{}, fmt.Errorf("%s: %w", alg, err)
		}
		m, err := Summarize(s)
		if err != nil {
			return Comparison{}, fmt.Errorf("%s: %w", alg, err)
		}
		c.Results = append(c.Results, Result{Schedule: s, Metrics: m})
	}

	c.BestWaiting = best(c.Results, func(r Result) float64 { return r.Metrics.AverageWaiting })
	c.BestTurnaround = best(c.Results, func(r Result) float64 { return r.Metrics.AverageTurnaround })
	c.BestOverall = best(c.Results, Result.Score)
	return c, nil
}

// Result returns the run for alg.
func (c Comparison) Result(alg Algorithm) (Result, bool) {
	for _, r := range c.Results {
		if r.Schedule.Algorithm == alg {
			return r, true
		}
	}
	return Result{}, false
}

// best picks the lowest key; only a strictly lower value displaces an earlier result.
func best(results []Result, key func(Result) float64) Algorithm {
	winner := results[0]
	for _, r := range results[1:] {
		if key(r) < key(winner) {
			winner = r
		}
	}
	return winner.Schedule.Algorithm
}
