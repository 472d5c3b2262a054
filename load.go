package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

//region Loading processes.

func openProcessingFile(path string) (*os.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: error opening scheduling file", err)
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			logger.Printf("%v: error closing scheduling file", err)
		}
	}

	return f, closeFn, nil
}

// loadFile reads a batch from path: JSON when the extension is .json, CSV otherwise.
func loadFile(path string) (Batch, error) {
	f, closeFile, err := openProcessingFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("%w: reading JSON", err)
		}
		return loadProcessesJSON(data)
	}
	return loadProcesses(f)
}

// loadProcesses reads CSV rows of id, burst, arrival and an optional priority.
func loadProcesses(r io.Reader) (Batch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	processes := make(Batch, len(rows))
	for i, row := range rows {
		if len(row) < 3 || len(row) > 4 {
			return nil, fmt.Errorf("%w: row %d has %d fields, want 3 or 4", ErrInvalidArgs, i+1, len(row))
		}
		fields := []*int64{
			&processes[i].ProcessID,
			&processes[i].BurstDuration,
			&processes[i].ArrivalTime,
			&processes[i].Priority,
		}
		for j := range row {
			if *fields[j], err = strToInt(row[j]); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
	}

	return processes, processes.Validate()
}

// loadProcessesJSON reads {"processes": [{"arrival_time", "burst_time", "priority"}]}.
// A missing process_id is numbered by position.
func loadProcessesJSON(data []byte) (Batch, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidArgs)
	}
	list := gjson.GetBytes(data, "processes")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: missing processes array", ErrInvalidArgs)
	}

	var (
		processes Batch
		err       error
	)
	list.ForEach(func(_, v gjson.Result) bool {
		p := Process{ProcessID: int64(len(processes) + 1)}
		fields := []struct {
			key      string
			dst      *int64
			required bool
		}{
			{"process_id", &p.ProcessID, false},
			{"arrival_time", &p.ArrivalTime, true},
			{"burst_time", &p.BurstDuration, true},
			{"priority", &p.Priority, false},
		}
		for _, f := range fields {
			if err = jsonInt(v, f.key, f.dst, f.required); err != nil {
				err = fmt.Errorf("process %d: %w", len(processes)+1, err)
				return false
			}
		}
		processes = append(processes, p)
		return true
	})
	if err != nil {
		return nil, err
	}

	return processes, processes.Validate()
}

// promptProcesses asks for a process count and then arrival, burst and priority
// for each process. Negative arrivals and non-positive bursts are refused here,
// before the batch reaches a scheduler.
func promptProcesses(in io.Reader, out io.Writer) (Batch, error) {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	next := func(prompt string) (int64, error) {
		_, _ = fmt.Fprint(out, prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalidArgs)
		}
		return strToInt(sc.Text())
	}

	n, err := next("Enter number of processes: ")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: process count must be positive, got %d", ErrInvalidArgs, n)
	}

	processes := make(Batch, n)
	for i := range processes {
		_, _ = fmt.Fprintf(out, "\nProcess %d:\n", i+1)
		p := &processes[i]
		p.ProcessID = int64(i + 1)
		if p.ArrivalTime, err = next("  Arrival time: "); err != nil {
			return nil, err
		}
		if p.ArrivalTime < 0 {
			return nil, fmt.Errorf("%w: process %d arrival time must not be negative", ErrInvalidProcess, p.ProcessID)
		}
		if p.BurstDuration, err = next("  Burst time: "); err != nil {
			return nil, err
		}
		if p.BurstDuration <= 0 {
			return nil, fmt.Errorf("%w: process %d burst time must be positive", ErrInvalidProcess, p.ProcessID)
		}
		if p.Priority, err = next("  Priority (lower number = higher priority): "); err != nil {
			return nil, err
		}
	}

	return processes, nil
}

// jsonInt stores the integer at key into dst. Strings, fractions and other
// non-integer values are refused rather than coerced.
func jsonInt(v gjson.Result, key string, dst *int64, required bool) error {
	f := v.Get(key)
	if !f.Exists() {
		if required {
			return fmt.Errorf("%w: missing %s", ErrInvalidArgs, key)
		}
		return nil
	}
	if f.Type != gjson.Number || f.Float() != float64(f.Int()) {
		return fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidArgs, key, f.Raw)
	}
	*dst = f.Int()
	return nil
}

func strToInt(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}

	return i, nil
}

//endregion
