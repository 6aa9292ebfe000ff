package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/perf/benchstat"

	"github.com/VKCOM/langbench/internal/benv"
	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/report"
	"github.com/VKCOM/langbench/internal/series"
)

func cmdCompare(args []string) error {
	const usageHelp = `
Usage: langbench compare [-output dir] old new
* old and new are languages, e.g. c and rs
Compares the results of every target measured in both languages
with benchstat. Programs of the same target and language are merged.

Example: langbench compare c rs
Example: langbench compare -output nightly cpp zig
`

	fs := flag.NewFlagSet("langbench compare", flag.ExitOnError)
	fs.Usage = func() {
		log.Print(strings.TrimSpace(usageHelp))
	}
	outputDir := fs.String("output", benv.OutputDir(), `results directory written by run`)
	geomean := fs.Bool("geomean", true, "print the geometric mean of each language")
	colorize := fs.String("colorize", "auto", "colorize output: auto, true, false")
	fs.Parse(args)

	if len(fs.Args()) != 2 {
		fs.Usage()
		return errors.New("expected two languages")
	}

	var langs [2]program.Language
	for i, arg := range fs.Args() {
		lang, err := program.ParseLanguage(arg)
		if err != nil {
			return err
		}
		langs[i] = lang
	}
	if langs[0] == langs[1] {
		return fmt.Errorf("both sides are %s", langs[0].DisplayName())
	}

	results, err := report.LoadSeries(filepath.Join(*outputDir, report.ResultsDir))
	if err != nil {
		return err
	}
	oldResults, newResults, err := splitByLanguage(results, langs[0], langs[1])
	if err != nil {
		return err
	}

	c := &benchstat.Collection{
		Alpha:      0.05,
		DeltaTest:  benchstat.UTest,
		AddGeoMean: *geomean,
	}
	for _, side := range []struct {
		lang    program.Language
		results []*series.Result
	}{
		{langs[0], oldResults},
		{langs[1], newResults},
	} {
		var buf bytes.Buffer
		if err := report.WriteBenchfmt(&buf, side.results, report.TargetKey); err != nil {
			return err
		}
		if err := c.AddFile(side.lang.DisplayName(), &buf); err != nil {
			return err
		}
	}

	printBenchstat(c, colorizeEnabled(*colorize))
	return nil
}

// splitByLanguage keeps the series of targets measured in both languages.
func splitByLanguage(results []*series.Result, oldLang, newLang program.Language) (oldResults, newResults []*series.Result, err error) {
	targets := make(map[program.Language]map[string]bool)
	for _, r := range results {
		lang, err := program.ParseLanguage(r.Language)
		if err != nil {
			continue
		}
		if targets[lang] == nil {
			targets[lang] = make(map[string]bool)
		}
		targets[lang][program.TargetOf(r.Bench)] = true
	}

	for _, r := range results {
		target := program.TargetOf(r.Bench)
		if !targets[oldLang][target] || !targets[newLang][target] {
			continue
		}
		switch r.Language {
		case oldLang.String():
			oldResults = append(oldResults, r)
		case newLang.String():
			newResults = append(newResults, r)
		}
	}
	if len(oldResults) == 0 {
		return nil, nil, fmt.Errorf("no target has results in both %s and %s", oldLang.DisplayName(), newLang.DisplayName())
	}
	return oldResults, newResults, nil
}
