package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"github.com/VKCOM/langbench/internal/config"
	"github.com/VKCOM/langbench/internal/measure"
	"github.com/VKCOM/langbench/internal/report"
	"github.com/VKCOM/langbench/internal/series"
	"github.com/VKCOM/langbench/internal/sweep"
)

func cmdMeasure(args []string) error {
	fs := flag.NewFlagSet("langbench measure", flag.ExitOnError)
	logFlags := addLogFlags(fs)
	runs := fs.Int("runs", 10, `run the command n times`)
	timeout := fs.Duration("timeout", config.DefaultTimeout, `per-run timeout`)
	input := fs.Float64("input", 0, `input value recorded with the samples`)
	name := fs.String("name", "", `series name; defaults to the command name`)
	output := fs.String("output", "", `write the series as JSON into this directory`)
	fs.Parse(args)

	if len(fs.Args()) == 0 {
		return fmt.Errorf("expected a command to measure, e.g. langbench measure -- sleep 1")
	}
	if *runs <= 0 {
		return fmt.Errorf("invalid -runs %d", *runs)
	}
	command := fs.Args()

	logger, closer, err := logFlags.logger()
	if err != nil {
		return err
	}
	defer closer.Close()

	if *name == "" {
		*name = command[0]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()
	defer flushProgress()

	runner := measure.NewRunner(logger)
	result := series.New(*name, "", *input)
	req := measure.Request{Command: command, Input: *input, Timeout: *timeout}
	if err := measureRuns(ctx, runner, logger, result, req, *runs); err != nil {
		return err
	}
	flushProgress()

	report.PrintSeries(color.Output, result)
	if *output != "" {
		path, err := report.WriteSeries(*output, result)
		if err != nil {
			return err
		}
		logger.Info("series written", "path", path)
	}
	return nil
}

// measureRuns appends runs samples of req to result. Lost measurements are
// logged and skipped, the way a sweep treats them.
func measureRuns(ctx context.Context, m sweep.Measurer, logger *slog.Logger, result *series.Result, req measure.Request, runs int) error {
	start := time.Now()
	for i := 0; i < runs; i++ {
		eta := time.Duration(0)
		if i > 0 {
			eta = time.Since(start) / time.Duration(i) * time.Duration(runs-i)
		}
		printProgressBar(fmt.Sprintf("run %d/%d", i+1, runs), float64(i)/float64(runs), eta)

		req.Index = i
		run, err := m.Measure(ctx, req)
		if errors.Is(err, measure.ErrNoResult) {
			logger.Error("measurement lost, continuing", "run", i, "err", err)
			continue
		}
		if err != nil {
			return err
		}
		result.Append(run)
	}
	return nil
}
