package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrInvalidArgs      = errors.New("invalid args")
	ErrEmptyBatch       = errors.New("empty batch")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidProcess   = errors.New("invalid process descriptor")
)

type (
	// Process is one entry of a batch. The first four fields are input; the
	// timing fields are filled in by a scheduler.
	Process struct {
		ProcessID     int64
		ArrivalTime   int64
		BurstDuration int64
		Priority      int64

		WaitingTime    int64
		TurnaroundTime int64
		CompletionTime int64
	}
	TimeSlice struct {
		PID   int64
		Start int64
		Stop  int64
	}
	// Batch is an ordered set of processes, unique by ProcessID.
	Batch []Process
)

// NewBatch builds a batch from (arrival, burst, priority) triples, numbering the
// processes 1..n in the order given.
func NewBatch(rows ...[3]int64) Batch {
	b := make(Batch, len(rows))
	for i, s := range rows {
		b[i] = Process{
			ProcessID:     int64(i + 1),
			ArrivalTime:   s[0],
			BurstDuration: s[1],
			Priority:      s[2],
		}
	}
	return b
}

// Clone returns an independent copy of the batch.
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	c := make(Batch, len(b))
	copy(c, b)
	return c
}

// Reset returns a copy with every computed field cleared.
func (b Batch) Reset() Batch {
	c := b.Clone()
	for i := range c {
		c[i].WaitingTime = 0
		c[i].TurnaroundTime = 0
		c[i].CompletionTime = 0
	}
	return c
}

// ByID returns a copy ordered by process id.
func (b Batch) ByID() Batch {
	c := b.Clone()
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].ProcessID < c[j].ProcessID
	})
	return c
}

// Validate reports the first malformed process. The clock of any schedule runs
// to at most the latest arrival plus the total burst, so a batch where that sum
// does not fit in an int64 is refused.
func (b Batch) Validate() error {
	if len(b) == 0 {
		return ErrEmptyBatch
	}
	seen := make(map[int64]struct{}, len(b))
	var lastArrival, totalBurst int64
	for _, p := range b {
		switch {
		case p.ProcessID <= 0:
			return fmt.Errorf("%w: process id %d must be positive", ErrInvalidProcess, p.ProcessID)
		case p.ArrivalTime < 0:
			return fmt.Errorf("%w: process %d has negative arrival time %d", ErrInvalidProcess, p.ProcessID, p.ArrivalTime)
		case p.BurstDuration <= 0:
			return fmt.Errorf("%w: process %d has non-positive burst time %d", ErrInvalidProcess, p.ProcessID, p.BurstDuration)
		}
		if _, dup := seen[p.ProcessID]; dup {
			return fmt.Errorf("%w: duplicate process id %d", ErrInvalidProcess, p.ProcessID)
		}
		seen[p.ProcessID] = struct{}{}

		if p.ArrivalTime > math.MaxInt64-p.BurstDuration || totalBurst > math.MaxInt64-p.BurstDuration {
			return fmt.Errorf("%w: process %d overflows the clock", ErrInvalidProcess, p.ProcessID)
		}
		totalBurst += p.BurstDuration
		lastArrival = max(lastArrival, p.ArrivalTime)
	}
	if lastArrival > math.MaxInt64-totalBurst {
		return fmt.Errorf("%w: latest arrival %d plus total burst %d overflows the clock", ErrInvalidProcess, lastArrival, totalBurst)
	}
	return nil
}

// finish records a completion at clock and derives the other timing fields.
func (p *Process) finish(clock int64) {
	p.CompletionTime = clock
	p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstDuration
}
