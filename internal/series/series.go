// Package series folds repeated measurements of one benchmark, language and
// input into running statistics.
package series

import (
	"time"

	"github.com/VKCOM/langbench/internal/measure"
)

// Result accumulates the runs of one (bench, language, input) triple.
//
// Failed runs are appended like any other sample and take part in the
// statistics with their zero timings. Callers that want them excluded must
// filter before calling Append.
type Result struct {
	Bench    string  `json:"bench"`
	Language string  `json:"language"`
	Input    float64 `json:"input"`

	RunResults []measure.RunResult `json:"run_results"`

	// Averages are exact means in nanoseconds.
	AverageRunTime float64       `json:"average_run_time"`
	MinimumRunTime time.Duration `json:"minimum_run_time"`
	MaximumRunTime time.Duration `json:"maximum_run_time"`

	AverageCPUTime float64       `json:"average_cpu_time"`
	MinimumCPUTime time.Duration `json:"minimum_cpu_time"`
	MaximumCPUTime time.Duration `json:"maximum_cpu_time"`

	runTimeSum time.Duration
	cpuTimeSum time.Duration
}

// New returns an empty series with its own run slice.
func New(bench, language string, input float64) *Result {
	return &Result{
		Bench:      bench,
		Language:   language,
		Input:      input,
		RunResults: make([]measure.RunResult, 0),
	}
}

// Append records r and updates the statistics. The first appended run
// initializes minimum and maximum.
func (s *Result) Append(r measure.RunResult) {
	first := len(s.RunResults) == 0
	s.RunResults = append(s.RunResults, r)

	runTime := r.RunTime
	cpuTime := r.TotalCPUTime()

	s.runTimeSum += runTime
	s.cpuTimeSum += cpuTime
	n := float64(len(s.RunResults))
	s.AverageRunTime = float64(s.runTimeSum) / n
	s.AverageCPUTime = float64(s.cpuTimeSum) / n

	if first {
		s.MinimumRunTime, s.MaximumRunTime = runTime, runTime
		s.MinimumCPUTime, s.MaximumCPUTime = cpuTime, cpuTime
		return
	}
	s.MinimumRunTime = min(s.MinimumRunTime, runTime)
	s.MaximumRunTime = max(s.MaximumRunTime, runTime)
	s.MinimumCPUTime = min(s.MinimumCPUTime, cpuTime)
	s.MaximumCPUTime = max(s.MaximumCPUTime, cpuTime)
}

// Len is the number of appended runs.
func (s *Result) Len() int {
	return len(s.RunResults)
}

// Failures counts the appended runs flagged as failed.
func (s *Result) Failures() int {
	n := 0
	for _, r := range s.RunResults {
		if r.Failed {
			n++
		}
	}
	return n
}

// TimeOuts counts the runs killed at their deadline.
func (s *Result) TimeOuts() int {
	n := 0
	for _, r := range s.RunResults {
		if r.TimedOut() {
			n++
		}
	}
	return n
}

// PeakRSS is the largest MaxRSS over all runs, in KiB.
func (s *Result) PeakRSS() int64 {
	var peak int64
	for _, r := range s.RunResults {
		peak = max(peak, r.MaxRSS)
	}
	return peak
}

// Rebuild recomputes the statistics from RunResults. It is used after a
// series has been decoded from disk.
func (s *Result) Rebuild() {
	runs := s.RunResults
	fresh := New(s.Bench, s.Language, s.Input)
	for _, r := range runs {
		fresh.Append(r)
	}
	*s = *fresh
}
