package series

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/VKCOM/langbench/internal/measure"
)

func seriesOf(bench, language string, input float64, runTimes ...time.Duration) *Result {
	s := New(bench, language, input)
	for i, rt := range runTimes {
		s.Append(sample(i, rt, rt, 0))
	}
	return s
}

func TestSummaryBuild(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	sum := NewSummary(now)
	if sum.ID == "" {
		t.Error("summary has no id")
	}
	if !sum.Datetime.Equal(now) || sum.Datetime.Location() != time.UTC {
		t.Errorf("Datetime = %v, want %v in UTC", sum.Datetime, now)
	}

	sum.Build([]*Result{
		seriesOf("nbody-2.rs", "rs", 1000, 30*time.Millisecond),
		seriesOf("fasta-1.c", "c", 10, 5*time.Millisecond),
		seriesOf("nbody-1.c", "c", 1000, 20*time.Millisecond, 40*time.Millisecond),
	})

	want := []Entry{
		{Bench: "fasta-1.c", Target: "fasta", Language: "c", Input: 10, Runs: 1,
			AverageRunTime: float64(5 * time.Millisecond), MinimumRunTime: 5 * time.Millisecond, MaximumRunTime: 5 * time.Millisecond,
			AverageCPUTime: float64(5 * time.Millisecond)},
		{Bench: "nbody-1.c", Target: "nbody", Language: "c", Input: 1000, Runs: 2,
			AverageRunTime: float64(30 * time.Millisecond), MinimumRunTime: 20 * time.Millisecond, MaximumRunTime: 40 * time.Millisecond,
			AverageCPUTime: float64(30 * time.Millisecond)},
		{Bench: "nbody-2.rs", Target: "nbody", Language: "rs", Input: 1000, Runs: 1,
			AverageRunTime: float64(30 * time.Millisecond), MinimumRunTime: 30 * time.Millisecond, MaximumRunTime: 30 * time.Millisecond,
			AverageCPUTime: float64(30 * time.Millisecond)},
	}
	if diff := cmp.Diff(want, sum.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +have):\n%s", diff)
	}
}

func TestSummaryFastest(t *testing.T) {
	failed := New("nbody-3.go", "go", 1000)
	failed.Append(measure.RunResult{Failed: true, Status: measure.StatusLaunchFailed})

	sum := NewSummary(time.Now())
	sum.Build([]*Result{
		seriesOf("nbody-1.c", "c", 1000, 20*time.Millisecond),
		seriesOf("nbody-2.rs", "rs", 1000, 15*time.Millisecond),
		failed,
		seriesOf("nbody-1.c", "c", 5000, 90*time.Millisecond),
	})

	have := sum.Fastest()
	ignore := cmpopts.IgnoreFields(Entry{}, "Target", "Input", "Runs", "Failures", "TimeOuts",
		"AverageRunTime", "MinimumRunTime", "MaximumRunTime", "AverageCPUTime", "PeakRSS")
	want := []Entry{
		{Bench: "nbody-2.rs", Language: "rs"},
		{Bench: "nbody-1.c", Language: "c"},
	}
	if diff := cmp.Diff(want, have, ignore); diff != "" {
		t.Errorf("fastest mismatch (-want +have):\n%s", diff)
	}
}
