package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/series"
)

// BenchKey names a series in benchmark output. Series with equal keys are
// treated by benchstat as samples of the same benchmark.
type BenchKey func(r *series.Result) string

// ProgramKey keeps every program apart: nbody-1.c becomes Nbody_1_c.
func ProgramKey(r *series.Result) string {
	return benchName(r.Bench)
}

// TargetKey merges every program of a target: nbody-1.c becomes Nbody.
// It is used to compare languages against each other.
func TargetKey(r *series.Result) string {
	return benchName(program.TargetOf(r.Bench))
}

func benchName(s string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
	if name == "" {
		return name
	}
	first := []rune(name)
	first[0] = unicode.ToUpper(first[0])
	return string(first)
}

// WriteBenchfmt prints every successful run as a line of the Go benchmark
// format so the samples can be fed to benchstat:
//
//	BenchmarkNbody/input=1000  1  812345678 ns/op  811000000 cpu-ns/op  2048 maxrss-KiB
//
// Failed runs carry no timing and are left out.
func WriteBenchfmt(w io.Writer, results []*series.Result, key BenchKey) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		name := key(r)
		for _, run := range r.RunResults {
			if run.Failed {
				continue
			}
			fmt.Fprintf(bw, "Benchmark%s/input=%s\t1\t%d ns/op\t%d cpu-ns/op\t%d maxrss-KiB\n",
				name, program.FormatInput(r.Input), run.RunTime.Nanoseconds(),
				run.TotalCPUTime().Nanoseconds(), run.MaxRSS)
		}
	}
	return bw.Flush()
}
