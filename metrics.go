package main

// Metrics are the aggregate figures printed under a schedule table.
type Metrics struct {
	AverageWaiting    float64
	AverageTurnaround float64
	Throughput        float64 // processes per time unit
	Utilization       float64 // busy fraction of the makespan, time 0 to last exit
}

// AverageWaiting is the mean waiting time, or ErrEmptyBatch.
func AverageWaiting(processes Batch) (float64, error) {
	return average(processes, func(p Process) int64 { return p.WaitingTime })
}

// AverageTurnaround is the mean turnaround time, or ErrEmptyBatch.
func AverageTurnaround(processes Batch) (float64, error) {
	return average(processes, func(p Process) int64 { return p.TurnaroundTime })
}

func average(processes Batch, field func(Process) int64) (float64, error) {
	if len(processes) == 0 {
		return 0, ErrEmptyBatch
	}
	var total int64
	for _, p := range processes {
		total += field(p)
	}
	return float64(total) / float64(len(processes)), nil
}

// Summarize computes the averages along with throughput and utilization
// taken from the Gantt chart.
func Summarize(s Schedule) (Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.AverageWaiting, err = AverageWaiting(s.Processes); err != nil {
		return Metrics{}, err
	}
	if m.AverageTurnaround, err = AverageTurnaround(s.Processes); err != nil {
		return Metrics{}, err
	}
	if len(s.Gantt) == 0 {
		return m, nil
	}

	var busy, makespan int64
	for _, ts := range s.Gantt {
		busy += ts.Stop - ts.Start
		makespan = max(makespan, ts.Stop)
	}
	if makespan > 0 {
		m.Throughput = float64(len(s.Processes)) / float64(makespan)
		m.Utilization = float64(busy) / float64(makespan)
	}
	return m, nil
}
