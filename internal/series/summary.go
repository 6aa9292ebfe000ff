package series

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/VKCOM/langbench/internal/program"
)

// Summary condenses every series of one sweep.
type Summary struct {
	ID       string    `json:"id"`
	Datetime time.Time `json:"datetime"`
	Entries  []Entry   `json:"entries"`
}

// Entry is the condensed form of one series.
type Entry struct {
	Bench    string  `json:"bench"`
	Target   string  `json:"target"`
	Language string  `json:"language"`
	Input    float64 `json:"input"`

	Runs     int `json:"runs"`
	Failures int `json:"failures"`
	TimeOuts int `json:"timeouts"`

	AverageRunTime float64       `json:"average_run_time"`
	MinimumRunTime time.Duration `json:"minimum_run_time"`
	MaximumRunTime time.Duration `json:"maximum_run_time"`
	AverageCPUTime float64       `json:"average_cpu_time"`
	PeakRSS        int64         `json:"peak_rss"`
}

func NewSummary(now time.Time) *Summary {
	return &Summary{
		ID:       uuid.New().String(),
		Datetime: now.UTC(),
		Entries:  make([]Entry, 0),
	}
}

// Build appends one entry per series, ordered by target, input and language.
func (s *Summary) Build(results []*Result) {
	for _, r := range results {
		s.Entries = append(s.Entries, Entry{
			Bench:          r.Bench,
			Target:         program.TargetOf(r.Bench),
			Language:       r.Language,
			Input:          r.Input,
			Runs:           r.Len(),
			Failures:       r.Failures(),
			TimeOuts:       r.TimeOuts(),
			AverageRunTime: r.AverageRunTime,
			MinimumRunTime: r.MinimumRunTime,
			MaximumRunTime: r.MaximumRunTime,
			AverageCPUTime: r.AverageCPUTime,
			PeakRSS:        r.PeakRSS(),
		})
	}
	sort.SliceStable(s.Entries, func(i, j int) bool {
		a, b := s.Entries[i], s.Entries[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Input != b.Input {
			return a.Input < b.Input
		}
		return a.Language < b.Language
	})
}

// Fastest picks, for every (target, input) pair, the entry with the lowest
// average run time. Entries whose runs all failed are not eligible.
func (s *Summary) Fastest() []Entry {
	type key struct {
		target string
		input  float64
	}
	best := make(map[key]int)
	var order []key
	for i, e := range s.Entries {
		if e.Runs == 0 || e.Failures == e.Runs {
			continue
		}
		k := key{e.Target, e.Input}
		j, ok := best[k]
		if !ok {
			best[k] = i
			order = append(order, k)
			continue
		}
		if e.AverageRunTime < s.Entries[j].AverageRunTime {
			best[k] = i
		}
	}

	out := make([]Entry, 0, len(order))
	for _, k := range order {
		out = append(out, s.Entries[best[k]])
	}
	return out
}
