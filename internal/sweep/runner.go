package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/VKCOM/langbench/internal/measure"
	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/report"
	"github.com/VKCOM/langbench/internal/series"
	"github.com/VKCOM/langbench/internal/teamcity"
)

type runner struct {
	conf *RunConfig
	log  *slog.Logger

	logger    *teamcity.Logger
	commander *program.Commander
	measurer  Measurer
	builder   Builder

	sysRoot  string
	buildDir string
	tempDir  bool

	programs []program.Program
	results  []*series.Result
	summary  *series.Summary
}

func newRunner(conf *RunConfig) *runner {
	output := io.Discard
	if conf.TeamcityOutput && conf.Output != nil {
		output = conf.Output
	}
	log := conf.Log
	if log == nil {
		log = slog.Default()
	}
	return &runner{
		conf:    conf,
		log:     log,
		logger:  teamcity.NewLogger(output),
		sysRoot: "/",
		summary: series.NewSummary(time.Now()),
	}
}

func (r *runner) report() *Report {
	return &Report{Summary: r.summary, Results: r.results}
}

func (r *runner) progress(format string, args ...interface{}) {
	if r.conf.Progress != nil {
		r.conf.Progress(fmt.Sprintf(format, args...))
	}
}

func (r *runner) Run(ctx context.Context) error {
	defer func() {
		if !r.tempDir || r.buildDir == "" || r.conf.NoCleanup {
			return
		}
		if err := os.RemoveAll(r.buildDir); err != nil {
			r.log.Warn("remove temp build dir", "dir", r.buildDir, "err", err)
		}
	}()

	r.log.Info("sweep started", "session", r.summary.ID)

	steps := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"check for issues", r.stepCheckIssues},
		{"prepare tools", r.stepPrepareTools},
		{"find programs", r.stepFindPrograms},
		{"prepare build dir", r.stepPrepareBuildDir},
		{"run benchmarks", r.stepRunBenchmarks},
		{"write summary", r.stepWriteSummary},
		{"write metrics", r.stepWriteMetrics},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func (r *runner) stepCheckIssues(ctx context.Context) error {
	for _, issue := range checkIssues(r.sysRoot) {
		r.log.Warn(issue)
	}
	return nil
}

func (r *runner) stepPrepareTools(ctx context.Context) error {
	commander, err := program.NewCommander(r.conf.Config.General.Command)
	if err != nil {
		return err
	}
	r.commander = commander

	r.measurer = r.conf.Measurer
	if r.measurer == nil {
		r.measurer = measure.NewRunner(r.log)
	}
	return nil
}

func (r *runner) stepFindPrograms(ctx context.Context) error {
	programs, err := program.Discover(r.conf.Config.Filters, r.log)
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		return errors.New("filters select no programs")
	}
	r.programs = programs
	for _, p := range r.programs {
		r.log.Debug("program", "path", p.Path(), "language", p.Language())
	}
	return nil
}

func (r *runner) stepPrepareBuildDir(ctx context.Context) error {
	if r.conf.BuildDir == "" {
		tempDir, err := os.MkdirTemp("", "langbench-build")
		if err != nil {
			return err
		}
		r.buildDir = tempDir
		r.tempDir = true
	} else {
		dir, err := filepath.Abs(r.conf.BuildDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		r.buildDir = dir
	}
	r.log.Debug("build dir", "dir", r.buildDir)

	r.builder = r.conf.Builder
	if r.builder == nil {
		r.builder = &program.MakeBuilder{
			MakeCommand: r.conf.MakeCommand,
			BuildDir:    r.buildDir,
			Config:      r.conf.Config,
		}
	}
	return nil
}

func (r *runner) stepRunBenchmarks(ctx context.Context) error {
	for _, p := range r.programs {
		if err := r.runProgram(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) runProgram(ctx context.Context, p program.Program) error {
	inputs := r.conf.Config.Inputs(p.Target())
	if len(inputs) == 0 {
		r.log.Warn("no input values configured, skipping", "program", p.Name(), "target", p.Target())
		return nil
	}

	start := time.Now()
	r.logger.TestSuiteStarted(p.Name())
	defer func() {
		r.logger.TestSuiteFinished(p.Name(), time.Since(start))
	}()

	r.progress("building %s...", p.Name())
	built, err := r.builder.Build(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w: %w", p.Name(), measure.ErrInterrupted, context.Cause(ctx))
		}
		r.log.Error("build failed, skipping", "program", p.Name(), "err", err)
		r.logger.TestFailed(p.Name(), err.Error())
		return nil
	}

	for _, input := range inputs {
		result, err := r.runSeries(ctx, p, built.Executable, input)
		if err != nil {
			return err
		}
		r.results = append(r.results, result)

		path, err := report.WriteSeries(filepath.Join(r.conf.OutputDir, report.ResultsDir), result)
		if err != nil {
			return err
		}
		r.log.Debug("series written", "path", path)

		if !r.conf.TeamcityOutput && r.conf.Output != nil {
			r.progress("")
			report.PrintSeries(r.conf.Output, result)
		}
	}
	return nil
}

func (r *runner) runSeries(ctx context.Context, p program.Program, executable string, input float64) (*series.Result, error) {
	command, err := r.commander.Command(executable, input)
	if err != nil {
		return nil, err
	}

	runs := r.conf.Config.Runs()
	result := series.New(p.Name(), p.Language().String(), input)
	for i := 0; i < runs; i++ {
		name := fmt.Sprintf("%s/input=%s/run=%d", p.Name(), program.FormatInput(input), i)
		r.progress("running %s (%d/%d)...", p.Name(), i+1, runs)
		r.logger.TestStarted(name)

		run, err := r.measurer.Measure(ctx, measure.Request{
			Index:   i,
			Command: command,
			Input:   input,
			Timeout: r.conf.Config.Timeout(),
		})
		switch {
		case errors.Is(err, measure.ErrNoResult):
			r.log.Error("measurement lost, continuing", "program", p.Name(), "input", input, "run", i, "err", err)
			r.logger.TestFailed(name, err.Error())
			continue
		case err != nil:
			r.logger.TestFailed(name, err.Error())
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		switch {
		case run.Failed:
			r.logger.TestFailed(name, fmt.Sprintf("run %s", run.Status))
		case run.TimedOut():
			r.logger.TestFailed(name, fmt.Sprintf("timed out after %v", r.conf.Config.Timeout()))
		default:
			r.logger.TestFinished(name, run.RunTime)
		}

		if run.Failed && r.conf.Config.General.SkipFailed {
			r.log.Warn("skipping failed run", "program", p.Name(), "input", input, "run", i, "status", run.Status)
			continue
		}
		result.Append(run)
	}
	return result, nil
}

func (r *runner) stepWriteSummary(ctx context.Context) error {
	r.summary.Build(r.results)
	path := filepath.Join(r.conf.OutputDir, report.SummaryFilename)
	if err := report.WriteSummary(path, r.summary); err != nil {
		return err
	}
	if !r.conf.TeamcityOutput && r.conf.Output != nil {
		report.PrintFastest(r.conf.Output, r.summary)
	}
	for _, e := range r.summary.Entries {
		key := fmt.Sprintf("%s.%s.%s", e.Target, e.Language, program.FormatInput(e.Input))
		r.logger.BuildStatistic(key, e.AverageRunTime/1e9)
	}
	r.log.Info("summary written", "path", path, "series", len(r.summary.Entries))
	return nil
}

func (r *runner) stepWriteMetrics(ctx context.Context) error {
	if r.conf.MetricsFile == "" {
		return nil
	}
	return report.WriteMetrics(r.conf.MetricsFile, r.results)
}
