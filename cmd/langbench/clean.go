package main

import (
	"flag"

	"github.com/VKCOM/langbench/internal/benv"
	"github.com/VKCOM/langbench/internal/fileutil"
)

// dependenciesList names the inputs of the dependency fetcher; it survives
// a clean.
const dependenciesList = "dependencies.list"

func cmdClean(args []string) error {
	fs := flag.NewFlagSet("langbench clean", flag.ExitOnError)
	programsDir := fs.String("programs", "programs", `generated programs directory`)
	dependenciesDir := fs.String("dependencies", "dependencies", `downloaded dependencies directory`)
	outputDir := fs.String("output", benv.OutputDir(), `results directory`)
	fs.Parse(args)

	for _, dir := range []string{*programsDir, *dependenciesDir, *outputDir} {
		if err := fileutil.Clear(dir, dependenciesList); err != nil {
			return err
		}
	}
	return nil
}
