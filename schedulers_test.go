package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeProcs is P1(0,5,prio 2), P2(1,3,prio 1), P3(2,8,prio 3).
func threeProcs() Batch {
	return NewBatch(
		[3]int64{0, 5, 2},
		[3]int64{1, 3, 1},
		[3]int64{2, 8, 3},
	)
}

type timing struct {
	completion, waiting, turnaround int64
}

func timings(b Batch) map[int64]timing {
	m := make(map[int64]timing, len(b))
	for _, p := range b {
		m[p.ProcessID] = timing{p.CompletionTime, p.WaitingTime, p.TurnaroundTime}
	}
	return m
}

func TestSchedulers_ThreeProcesses(t *testing.T) {
	tests := []struct {
		name string
		run  func(Batch) (Schedule, error)
		want map[int64]timing
	}{
		{
			name: "fcfs",
			run:  FCFSSchedule,
			want: map[int64]timing{1: {5, 0, 5}, 2: {8, 4, 7}, 3: {16, 6, 14}},
		},
		{
			name: "sjf",
			run:  SJFSchedule,
			want: map[int64]timing{1: {5, 0, 5}, 2: {8, 4, 7}, 3: {16, 6, 14}},
		},
		{
			name: "priority",
			run:  PrioritySchedule,
			want: map[int64]timing{1: {5, 0, 5}, 2: {8, 4, 7}, 3: {16, 6, 14}},
		},
		{
			name: "round robin q=2",
			run:  func(b Batch) (Schedule, error) { return RRSchedule(b, 2) },
			want: map[int64]timing{1: {12, 7, 12}, 2: {9, 5, 8}, 3: {16, 6, 14}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.run(threeProcs())
			require.NoError(t, err)
			assert.Equal(t, tt.want, timings(s.Processes))
		})
	}
}

func TestRRSchedule_Gantt(t *testing.T) {
	s, err := RRSchedule(threeProcs(), 2)
	require.NoError(t, err)

	assert.Equal(t, []TimeSlice{
		{PID: 1, Start: 0, Stop: 2},
		{PID: 2, Start: 2, Stop: 4},
		{PID: 3, Start: 4, Stop: 6},
		{PID: 1, Start: 6, Stop: 8},
		{PID: 2, Start: 8, Stop: 9},
		{PID: 3, Start: 9, Stop: 11},
		{PID: 1, Start: 11, Stop: 12},
		{PID: 3, Start: 12, Stop: 16},
	}, s.Gantt)
	assert.Equal(t, int64(2), s.Quantum)
}

func TestRRSchedule_ArrivalsQueueBeforePreempted(t *testing.T) {
	// P2 arrives during P1's first slice, so it runs before P1 resumes.
	s, err := RRSchedule(NewBatch([3]int64{0, 4, 0}, [3]int64{1, 2, 0}), 2)
	require.NoError(t, err)

	got := timings(s.Processes)
	assert.Equal(t, int64(6), got[1].completion)
	assert.Equal(t, int64(4), got[2].completion)
}

func TestRRSchedule_Edges(t *testing.T) {
	t.Run("burst equals quantum", func(t *testing.T) {
		s, err := RRSchedule(NewBatch([3]int64{0, 2, 0}), 2)
		require.NoError(t, err)
		assert.Equal(t, []TimeSlice{{PID: 1, Start: 0, Stop: 2}}, s.Gantt)
		assert.Equal(t, int64(2), s.Processes[0].CompletionTime)
	})

	t.Run("idle gap", func(t *testing.T) {
		s, err := RRSchedule(NewBatch([3]int64{0, 1, 0}, [3]int64{4, 2, 0}), 1)
		require.NoError(t, err)
		assert.Equal(t, []TimeSlice{
			{PID: 1, Start: 0, Stop: 1},
			{PID: 2, Start: 4, Stop: 6},
		}, s.Gantt)
		assert.Equal(t, map[int64]timing{1: {1, 0, 1}, 2: {6, 0, 2}}, timings(s.Processes))
	})

	t.Run("first arrival after zero", func(t *testing.T) {
		s, err := RRSchedule(NewBatch([3]int64{3, 2, 0}), 4)
		require.NoError(t, err)
		assert.Equal(t, int64(5), s.Processes[0].CompletionTime)
		assert.Equal(t, int64(0), s.Processes[0].WaitingTime)
	})

	t.Run("large quantum matches fcfs", func(t *testing.T) {
		b := NewBatch([3]int64{0, 4, 0}, [3]int64{0, 3, 0}, [3]int64{0, 5, 0})
		rr, err := RRSchedule(b, 10)
		require.NoError(t, err)
		fcfs, err := FCFSSchedule(b)
		require.NoError(t, err)
		assert.Equal(t, timings(fcfs.Processes), timings(rr.Processes))
	})

	t.Run("invalid quantum", func(t *testing.T) {
		for _, q := range []int64{0, -1} {
			_, err := RRSchedule(threeProcs(), q)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		}
	})
}

func TestFCFSSchedule(t *testing.T) {
	t.Run("idle gap", func(t *testing.T) {
		s, err := FCFSSchedule(NewBatch([3]int64{0, 2, 0}, [3]int64{5, 3, 0}))
		require.NoError(t, err)
		assert.Equal(t, map[int64]timing{1: {2, 0, 2}, 2: {8, 0, 3}}, timings(s.Processes))
	})

	t.Run("ordered by arrival then id", func(t *testing.T) {
		s, err := FCFSSchedule(NewBatch([3]int64{4, 1, 0}, [3]int64{0, 1, 0}, [3]int64{0, 1, 0}))
		require.NoError(t, err)
		var ids []int64
		for _, p := range s.Processes {
			ids = append(ids, p.ProcessID)
		}
		assert.Equal(t, []int64{2, 3, 1}, ids)
	})

	t.Run("single process", func(t *testing.T) {
		s, err := FCFSSchedule(NewBatch([3]int64{7, 3, 0}))
		require.NoError(t, err)
		assert.Equal(t, map[int64]timing{1: {10, 0, 3}}, timings(s.Processes))
	})
}

func TestSJFSchedule_TieBreaks(t *testing.T) {
	t.Run("shortest first then id", func(t *testing.T) {
		s, err := SJFSchedule(NewBatch([3]int64{0, 3, 0}, [3]int64{0, 3, 0}, [3]int64{0, 1, 0}))
		require.NoError(t, err)
		assert.Equal(t, map[int64]timing{1: {4, 1, 4}, 2: {7, 4, 7}, 3: {1, 0, 1}}, timings(s.Processes))
	})

	t.Run("equal bursts go to earlier arrival", func(t *testing.T) {
		s, err := SJFSchedule(NewBatch([3]int64{0, 10, 0}, [3]int64{2, 3, 0}, [3]int64{1, 3, 0}))
		require.NoError(t, err)
		got := timings(s.Processes)
		assert.Equal(t, int64(13), got[3].completion)
		assert.Equal(t, int64(16), got[2].completion)
	})

	t.Run("jumps idle time", func(t *testing.T) {
		s, err := SJFSchedule(NewBatch([3]int64{3, 2, 0}, [3]int64{10, 1, 0}))
		require.NoError(t, err)
		assert.Equal(t, []TimeSlice{{PID: 1, Start: 3, Stop: 5}, {PID: 2, Start: 10, Stop: 11}}, s.Gantt)
	})
}

func TestPrioritySchedule_TieBreaks(t *testing.T) {
	s, err := PrioritySchedule(NewBatch([3]int64{0, 4, 1}, [3]int64{1, 2, 0}, [3]int64{1, 2, 0}, [3]int64{1, 1, 5}))
	require.NoError(t, err)
	assert.Equal(t, []TimeSlice{
		{PID: 1, Start: 0, Stop: 4},
		{PID: 2, Start: 4, Stop: 6},
		{PID: 3, Start: 6, Stop: 8},
		{PID: 4, Start: 8, Stop: 9},
	}, s.Gantt)
}

func TestSchedulers_Errors(t *testing.T) {
	tests := []struct {
		name  string
		batch Batch
		want  error
	}{
		{"empty", Batch{}, ErrEmptyBatch},
		{"nil", nil, ErrEmptyBatch},
		{"zero burst", NewBatch([3]int64{0, 0, 0}), ErrInvalidProcess},
		{"negative arrival", NewBatch([3]int64{-1, 3, 0}), ErrInvalidProcess},
		{"duplicate id", Batch{{ProcessID: 1, BurstDuration: 1}, {ProcessID: 1, BurstDuration: 2}}, ErrInvalidProcess},
		{"zero id", Batch{{ProcessID: 0, BurstDuration: 1}}, ErrInvalidProcess},
		{"completion past int64", NewBatch([3]int64{math.MaxInt64 - 1, 5, 0}), ErrInvalidProcess},
		{"total burst past int64", NewBatch([3]int64{0, math.MaxInt64 / 2, 0}, [3]int64{0, math.MaxInt64/2 + 2, 0}), ErrInvalidProcess},
		{"late arrival plus total burst past int64", NewBatch([3]int64{1 << 62, 1 << 61, 0}, [3]int64{0, 1 << 61, 0}), ErrInvalidProcess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, alg := range Algorithms {
				_, err := Run(alg, tt.batch, 2)
				assert.ErrorIs(t, err, tt.want, alg.String())
			}
		})
	}

	_, err := Run(Algorithm(42), threeProcs(), 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// the largest batch that still fits finishes exactly at MaxInt64
	edge := NewBatch([3]int64{math.MaxInt64 - 5, 5, 0})
	for _, alg := range Algorithms {
		s, err := Run(alg, edge, 2)
		require.NoError(t, err, alg.String())
		assert.Equal(t, int64(math.MaxInt64), s.Processes[0].CompletionTime, alg.String())
	}
}

func TestSchedulers_DoNotMutateInput(t *testing.T) {
	input := threeProcs()
	snapshot := input.Clone()
	for _, alg := range Algorithms {
		_, err := Run(alg, input, 2)
		require.NoError(t, err)
	}
	assert.Equal(t, snapshot, input)
}

func randomBatch(r *rand.Rand, n int) Batch {
	b := make(Batch, n)
	for i := range b {
		b[i] = Process{
			ProcessID:     int64(i + 1),
			ArrivalTime:   r.Int63n(20),
			BurstDuration: r.Int63n(10) + 1,
			Priority:      r.Int63n(5),
		}
	}
	return b
}

func TestSchedulers_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(4600))
	for round := 0; round < 200; round++ {
		b := randomBatch(r, r.Intn(8)+1)
		quantum := r.Int63n(5) + 1
		for _, alg := range Algorithms {
			s, err := Run(alg, b, quantum)
			require.NoError(t, err)
			require.Len(t, s.Processes, len(b))

			executed := make(map[int64]int64)
			for i, ts := range s.Gantt {
				require.Less(t, ts.Start, ts.Stop)
				if i > 0 {
					require.LessOrEqual(t, s.Gantt[i-1].Stop, ts.Start, "overlapping slices")
				}
				executed[ts.PID] += ts.Stop - ts.Start
			}

			for _, p := range s.Processes {
				assert.Equal(t, p.CompletionTime-p.ArrivalTime, p.TurnaroundTime)
				assert.Equal(t, p.TurnaroundTime-p.BurstDuration, p.WaitingTime)
				assert.GreaterOrEqual(t, p.CompletionTime, p.ArrivalTime+p.BurstDuration)
				assert.Equal(t, p.BurstDuration, executed[p.ProcessID], "%s pid %d", alg, p.ProcessID)
			}
		}
	}
}

func TestFCFSSchedule_PermutationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		b := randomBatch(r, 6)
		shuffled := b.Clone()
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		a, err := FCFSSchedule(b)
		require.NoError(t, err)
		c, err := FCFSSchedule(shuffled)
		require.NoError(t, err)
		assert.Equal(t, a.Processes, c.Processes)
	}
}
