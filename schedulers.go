package main

import (
	"fmt"
	"sort"
)

// Schedule is the result of one scheduling run. Processes is a private copy of
// the input with every timing field filled in.
type Schedule struct {
	Algorithm Algorithm
	Quantum   int64 // round robin only
	Processes Batch
	Gantt     []TimeSlice
}

// Run dispatches to the scheduler for alg. The quantum is ignored by every
// algorithm except round robin.
func Run(alg Algorithm, processes Batch, quantum int64) (Schedule, error) {
	switch alg {
	case FCFS:
		return FCFSSchedule(processes)
	case SJF:
		return SJFSchedule(processes)
	case Priority:
		return PrioritySchedule(processes)
	case RoundRobin:
		return RRSchedule(processes, quantum)
	}
	return Schedule{}, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidParameter, alg)
}

//region Schedulers

// FCFSSchedule runs processes in order of arrival. The returned batch is
// ordered by arrival time, ties broken by id.
func FCFSSchedule(processes Batch) (Schedule, error) {
	if err := processes.Validate(); err != nil {
		return Schedule{}, err
	}
	var (
		procs = processes.Clone()
		gantt = make([]TimeSlice, 0, len(procs))
	)
	sort.SliceStable(procs, func(i, j int) bool {
		if procs[i].ArrivalTime != procs[j].ArrivalTime {
			return procs[i].ArrivalTime < procs[j].ArrivalTime
		}
		return procs[i].ProcessID < procs[j].ProcessID
	})

	clock := procs[0].ArrivalTime
	for i := range procs {
		if clock < procs[i].ArrivalTime {
			clock = procs[i].ArrivalTime
		}
		start := clock
		clock += procs[i].BurstDuration
		procs[i].finish(clock)
		gantt = append(gantt, TimeSlice{PID: procs[i].ProcessID, Start: start, Stop: clock})
	}

	return Schedule{Algorithm: FCFS, Processes: procs, Gantt: gantt}, nil
}

// SJFSchedule is non-preemptive shortest job first. Ties go to the earlier
// arrival, then the lower id.
func SJFSchedule(processes Batch) (Schedule, error) {
	return nonPreemptive(SJF, processes, func(a, b *Process) bool {
		if a.BurstDuration != b.BurstDuration {
			return a.BurstDuration < b.BurstDuration
		}
		return earlier(a, b)
	})
}

// PrioritySchedule is non-preemptive priority scheduling. A lower Priority
// value runs first; ties go to the earlier arrival, then the lower id.
func PrioritySchedule(processes Batch) (Schedule, error) {
	return nonPreemptive(Priority, processes, func(a, b *Process) bool {
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return earlier(a, b)
	})
}

// RRSchedule is preemptive round robin with a fixed quantum. Processes that
// arrive while a slice runs are queued ahead of the process that was just
// preempted.
func RRSchedule(processes Batch, quantum int64) (Schedule, error) {
	if quantum <= 0 {
		return Schedule{}, fmt.Errorf("%w: quantum must be positive, got %d", ErrInvalidParameter, quantum)
	}
	if err := processes.Validate(); err != nil {
		return Schedule{}, err
	}
	var (
		procs     = processes.Clone()
		remaining = make([]int64, len(procs))
		admitted  = make([]bool, len(procs))
		queue     = make([]int, 0, len(procs))
		arrivals  = make([]int, len(procs))
		gantt     = make([]TimeSlice, 0, len(procs))
		clock     int64
		completed int
	)
	for i := range procs {
		remaining[i] = procs[i].BurstDuration
		arrivals[i] = i
	}
	sort.SliceStable(arrivals, func(i, j int) bool {
		return earlier(&procs[arrivals[i]], &procs[arrivals[j]])
	})

	admit := func() {
		for _, i := range arrivals {
			if procs[i].ArrivalTime > clock {
				return
			}
			if !admitted[i] {
				admitted[i] = true
				queue = append(queue, i)
			}
		}
	}

	admit()
	for completed < len(procs) {
		if len(queue) == 0 {
			// idle: jump to the next arrival
			for _, i := range arrivals {
				if !admitted[i] {
					clock = procs[i].ArrivalTime
					break
				}
			}
			admit()
			continue
		}

		current := queue[0]
		queue = queue[1:]

		start := clock
		run := min(quantum, remaining[current])
		clock += run
		remaining[current] -= run
		gantt = extendGantt(gantt, TimeSlice{PID: procs[current].ProcessID, Start: start, Stop: clock})

		admit()
		if remaining[current] == 0 {
			procs[current].finish(clock)
			completed++
			continue
		}
		queue = append(queue, current)
	}

	return Schedule{Algorithm: RoundRobin, Quantum: quantum, Processes: procs, Gantt: gantt}, nil
}

//endregion

// nonPreemptive drives SJF and priority scheduling: at each decision point the
// best arrived, unscheduled process by less runs to completion.
func nonPreemptive(alg Algorithm, processes Batch, less func(a, b *Process) bool) (Schedule, error) {
	if err := processes.Validate(); err != nil {
		return Schedule{}, err
	}
	var (
		procs     = processes.Clone()
		done      = make([]bool, len(procs))
		gantt     = make([]TimeSlice, 0, len(procs))
		clock     int64
		completed int
	)

	for completed < len(procs) {
		next := -1
		for i := range procs {
			if done[i] || procs[i].ArrivalTime > clock {
				continue
			}
			if next == -1 || less(&procs[i], &procs[next]) {
				next = i
			}
		}
		if next == -1 {
			clock = nextArrival(procs, done)
			continue
		}

		start := clock
		clock += procs[next].BurstDuration
		procs[next].finish(clock)
		done[next] = true
		completed++
		gantt = append(gantt, TimeSlice{PID: procs[next].ProcessID, Start: start, Stop: clock})
	}

	return Schedule{Algorithm: alg, Processes: procs, Gantt: gantt}, nil
}

// nextArrival is the earliest arrival among processes not yet done.
func nextArrival(procs Batch, done []bool) int64 {
	next := int64(-1)
	for i := range procs {
		if done[i] {
			continue
		}
		if next == -1 || procs[i].ArrivalTime < next {
			next = procs[i].ArrivalTime
		}
	}
	return next
}

func earlier(a, b *Process) bool {
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ProcessID < b.ProcessID
}

// extendGantt appends s, merging it into the last slice when the same process
// simply kept the CPU.
func extendGantt(gantt []TimeSlice, s TimeSlice) []TimeSlice {
	if n := len(gantt); n > 0 && gantt[n-1].PID == s.PID && gantt[n-1].Stop == s.Start {
		gantt[n-1].Stop = s.Stop
		return gantt
	}
	return append(gantt, s)
}
