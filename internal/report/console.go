package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"

	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/series"
)

var (
	denominators = []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond, time.Nanosecond}
	units        = []string{"h", "m", "s", "ms", "µs", "ns"}
)

// FormatDuration prints ns nanoseconds in the largest unit that keeps the
// value at or above one, e.g. "1.25 s" or "830.00 µs".
func FormatDuration(ns float64) string {
	for i, d := range denominators {
		if math.Abs(ns) >= float64(d) {
			return fmt.Sprintf("%.2f %s", ns/float64(d), units[i])
		}
	}
	return "0 ns"
}

// FormatRSS prints a KiB amount in KiB, MiB or GiB.
func FormatRSS(kib int64) string {
	switch {
	case kib >= 1<<20:
		return fmt.Sprintf("%.2f GiB", float64(kib)/(1<<20))
	case kib >= 1<<10:
		return fmt.Sprintf("%.2f MiB", float64(kib)/(1<<10))
	}
	return fmt.Sprintf("%d KiB", kib)
}

// PrintSeries writes the statistics of r, e.g.
//
//	nbody-1.c (C, input 1000)
//	  Time (mean):        1.25 s    [User: 1.24 s, System: 3.00 ms]
//	  Range (min … max):  1.20 s … 1.31 s    5 runs
//	  Memory (peak):      2.00 MiB
func PrintSeries(w io.Writer, r *series.Result) {
	var user, system time.Duration
	for _, run := range r.RunResults {
		user += run.UserCPUTime
		system += run.SysCPUTime
	}
	n := float64(max(r.Len(), 1))

	if r.Language != "" {
		fmt.Fprintf(w, "%s (%s, input %s)\n",
			color.New(color.Bold).Sprint(r.Bench), displayLanguage(r.Language), program.FormatInput(r.Input))
	} else {
		fmt.Fprintf(w, "%s (input %s)\n", color.New(color.Bold).Sprint(r.Bench), program.FormatInput(r.Input))
	}
	fmt.Fprintf(w, "  Time (%s):        %s    [User: %s, System: %s]\n",
		color.GreenString("mean"),
		color.GreenString(FormatDuration(r.AverageRunTime)),
		color.CyanString(FormatDuration(float64(user)/n)),
		color.CyanString(FormatDuration(float64(system)/n)))
	fmt.Fprintf(w, "  Range (%s … %s):  %s … %s    %s\n",
		color.CyanString("min"),
		color.RedString("max"),
		color.CyanString(FormatDuration(float64(r.MinimumRunTime))),
		color.RedString(FormatDuration(float64(r.MaximumRunTime))),
		color.HiBlackString("%d runs", r.Len()))
	fmt.Fprintf(w, "  Memory (%s):      %s\n", color.GreenString("peak"), FormatRSS(r.PeakRSS()))

	if failures := r.Failures(); failures > 0 {
		fmt.Fprintf(w, "  %s\n", color.YellowString("%d of %d runs failed", failures, r.Len()))
	}
	if timeOuts := r.TimeOuts(); timeOuts > 0 {
		fmt.Fprintf(w, "  %s\n", color.RedString("%d of %d runs timed out", timeOuts, r.Len()))
	}
}

// PrintFastest lists the fastest program of every target and input.
func PrintFastest(w io.Writer, s *series.Summary) {
	for _, e := range s.Fastest() {
		fmt.Fprintf(w, "%s/%s: %s in %s\n",
			e.Target, program.FormatInput(e.Input),
			color.CyanString("%s (%s)", e.Bench, displayLanguage(e.Language)),
			color.GreenString(FormatDuration(e.AverageRunTime)))
	}
}

func displayLanguage(key string) string {
	lang, err := program.ParseLanguage(key)
	if err != nil {
		return key
	}
	return lang.DisplayName()
}
