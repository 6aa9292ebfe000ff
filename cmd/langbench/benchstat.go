package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/perf/benchstat"

	"github.com/VKCOM/langbench/internal/report"
	"github.com/VKCOM/langbench/internal/series"
)

func colorizeBenchstatTables(tables []*benchstat.Table) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	for _, table := range tables {
		for _, row := range table.Rows {
			switch {
			case strings.HasPrefix(row.Delta, "+"):
				row.Delta = red.Sprint(row.Delta)
			case strings.HasPrefix(row.Delta, "-"):
				row.Delta = green.Sprint(row.Delta)
			default:
				row.Delta = yellow.Sprint(row.Delta)
			}
		}
	}
}

func benchstatCheckTables(tables []*benchstat.Table) {
	for _, table := range tables {
		for _, row := range table.Rows {
			if len(row.Metrics) == 0 {
				continue
			}
			if len(row.Metrics[0].RValues) < 5 {
				log.Printf("WARNING: %s needs more samples, re-run with -runs=5 or higher?", row.Benchmark)
			}
		}
	}
}

// colorizeEnabled resolves the -colorize flag. color.NoColor is updated so
// that every fatih/color writer agrees with the decision.
func colorizeEnabled(colorize string) bool {
	enabled := strings.ToLower(colorize) == "true"
	if colorize == "auto" {
		enabled = isTerminal(os.Stdout)
	}
	color.NoColor = !enabled
	return enabled
}

// benchstatInput converts a benchstat argument into benchmark lines: a
// results directory or a series JSON file is rendered with key, anything
// else is taken as Go benchmark output.
func benchstatInput(arg string, key report.BenchKey) (io.Reader, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}

	var results []*series.Result
	switch {
	case info.IsDir():
		results, err = report.LoadSeries(arg)
	case strings.HasSuffix(arg, ".json"):
		var r *series.Result
		r, err = report.LoadSeriesFile(arg)
		results = []*series.Result{r}
	default:
		data, err := os.ReadFile(arg)
		return bytes.NewReader(data), err
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteBenchfmt(&buf, results, key); err != nil {
		return nil, err
	}
	return &buf, nil
}

func printBenchstat(c *benchstat.Collection, colorize bool) {
	tables := c.Tables()
	if colorize {
		colorizeBenchstatTables(tables)
	}
	benchstatCheckTables(tables)
	var buf bytes.Buffer
	benchstat.FormatText(&buf, tables)
	os.Stdout.Write(buf.Bytes())
}

func cmdBenchstat(args []string) error {
	fs := flag.NewFlagSet("langbench benchstat", flag.ExitOnError)
	flagDeltaTest := fs.String("delta-test", "utest", "significance `test` to apply to delta: utest, ttest, or none")
	flagAlpha := fs.Float64("alpha", 0.05, "consider change significant if p < `α`")
	flagGeomean := fs.Bool("geomean", false, "print the geometric mean of each file")
	flagSplit := fs.String("split", "pkg,goos,goarch", "split benchmarks by `labels`")
	flagSort := fs.String("sort", "none", "sort by `order`: [-]delta, [-]name, none")
	flagByTarget := fs.Bool("by-target", false, "merge the programs of a target into one benchmark")
	colorize := fs.String("colorize", "auto", "colorize output: auto, true, false")
	fs.Parse(args)

	enableColorize := colorizeEnabled(*colorize)

	var deltaTestNames = map[string]benchstat.DeltaTest{
		"none":   benchstat.NoDeltaTest,
		"u":      benchstat.UTest,
		"u-test": benchstat.UTest,
		"utest":  benchstat.UTest,
		"t":      benchstat.TTest,
		"t-test": benchstat.TTest,
		"ttest":  benchstat.TTest,
	}

	var sortNames = map[string]benchstat.Order{
		"none":  nil,
		"name":  benchstat.ByName,
		"delta": benchstat.ByDelta,
	}

	deltaTest := deltaTestNames[strings.ToLower(*flagDeltaTest)]
	if deltaTest == nil {
		return errors.New("invalid delta-test argument")
	}
	sortName := *flagSort
	reverse := false
	if strings.HasPrefix(sortName, "-") {
		reverse = true
		sortName = sortName[1:]
	}
	order, ok := sortNames[sortName]
	if !ok {
		return errors.New("invalid sort argument")
	}

	if len(fs.Args()) == 0 {
		return errors.New("expected at least 1 positional argument: a results directory, series file or benchmark output")
	}

	key := report.ProgramKey
	if *flagByTarget {
		key = report.TargetKey
	}

	c := &benchstat.Collection{
		Alpha:      *flagAlpha,
		AddGeoMean: *flagGeomean,
		DeltaTest:  deltaTest,
	}
	if *flagSplit != "" {
		c.SplitBy = strings.Split(*flagSplit, ",")
	}
	if order != nil {
		if reverse {
			order = benchstat.Reverse(order)
		}
		c.Order = order
	}
	for _, arg := range fs.Args() {
		r, err := benchstatInput(arg, key)
		if err != nil {
			return err
		}
		if err := c.AddFile(arg, r); err != nil {
			return err
		}
	}

	printBenchstat(c, enableColorize)
	return nil
}
