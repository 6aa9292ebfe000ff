package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/VKCOM/langbench/internal/benv"
	"github.com/VKCOM/langbench/internal/config"
	"github.com/VKCOM/langbench/internal/measure"
	"github.com/VKCOM/langbench/internal/sweep"
)

func cmdRun(args []string) error {
	conf := &sweep.RunConfig{}

	fs := flag.NewFlagSet("langbench run", flag.ExitOnError)
	logFlags := addLogFlags(fs)
	configFile := fs.String("config", benv.ConfigFile(),
		`benchmark config file`)
	fs.StringVar(&conf.OutputDir, "output", benv.OutputDir(),
		`directory receiving the series files and the summary`)
	fs.StringVar(&conf.BuildDir, "build-dir", "",
		`directory for program builds; a temp dir is used if empty`)
	fs.BoolVar(&conf.NoCleanup, "no-cleanup", false,
		`whether to keep temp build directory`)
	fs.StringVar(&conf.MakeCommand, "make", benv.String(benv.MakeVar, ""),
		`make binary path; if empty, make from $PATH is used`)
	fs.StringVar(&conf.MetricsFile, "metrics", "",
		`write Prometheus textfile metrics to this file`)
	fs.BoolVar(&conf.TeamcityOutput, "teamcity", false,
		`report bench execution progress in TeamCity format`)
	runs := fs.Int("runs", 0,
		`override the number of runs per input`)
	timeout := fs.Int("timeout", 0,
		`override the per-run timeout, in seconds`)
	noColor := fs.Bool("no-color", false,
		`disable colored output`)
	fs.Parse(args)

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *runs > 0 {
		cfg.General.RawRuns = *runs
	}
	if *timeout > 0 {
		cfg.General.RawTimeout = *timeout
	}
	// Positional arguments are extra program files.
	cfg.Filters.Include = append(cfg.Filters.Include, fs.Args()...)

	if conf.MakeCommand == "" {
		makeBinary := benv.FindMakeBinary()
		if makeBinary == "" {
			return fmt.Errorf("can't locate make binary; please set -make arg")
		}
		conf.MakeCommand = makeBinary
	}

	logger, closer, err := logFlags.logger()
	if err != nil {
		return err
	}
	defer closer.Close()

	if *noColor {
		color.NoColor = true
	}

	conf.OutputDir, err = filepath.Abs(conf.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %v", err)
	}
	conf.Config = cfg
	conf.Log = logger
	conf.Output = color.Output
	if !conf.TeamcityOutput && isTerminal(os.Stderr) {
		conf.Progress = func(msg string) {
			printProgress("%s", msg)
		}
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	// In case error occurs, we want to clear all progress-related text.
	defer flushProgress()

	_, err = sweep.Run(ctx, conf)
	if errors.Is(err, measure.ErrInterrupted) {
		logger.Warn("sweep interrupted; finished series are kept", "output", conf.OutputDir)
	}
	return err
}
