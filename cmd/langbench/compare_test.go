package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/series"
)

func TestSplitByLanguage(t *testing.T) {
	results := []*series.Result{
		series.New("fasta-1.c", "c", 25),
		series.New("fasta-2.rs", "rs", 25),
		series.New("nbody-1.c", "c", 1000),
		series.New("nbody-3.c", "c", 1000),
		series.New("nbody-1.rs", "rs", 1000),
		series.New("spectral-1.c", "c", 100),
		series.New("spectral-1.zig", "zig", 100),
	}

	oldResults, newResults, err := splitByLanguage(results, program.LangC, program.LangRust)
	if err != nil {
		t.Fatal(err)
	}
	names := func(rs []*series.Result) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Bench)
		}
		return out
	}
	if diff := cmp.Diff([]string{"fasta-1.c", "nbody-1.c", "nbody-3.c"}, names(oldResults)); diff != "" {
		t.Errorf("old mismatch (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fasta-2.rs", "nbody-1.rs"}, names(newResults)); diff != "" {
		t.Errorf("new mismatch (-want +have):\n%s", diff)
	}

	if _, _, err := splitByLanguage(results, program.LangGo, program.LangRust); err == nil {
		t.Errorf("expected an error without common targets")
	}
}
