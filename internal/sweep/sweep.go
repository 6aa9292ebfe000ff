// Package sweep builds every selected program and measures it over the
// configured inputs, one run at a time.
package sweep

import (
	"context"
	"io"
	"log/slog"

	"github.com/VKCOM/langbench/internal/config"
	"github.com/VKCOM/langbench/internal/measure"
	"github.com/VKCOM/langbench/internal/program"
	"github.com/VKCOM/langbench/internal/series"
)

// Measurer runs one measured execution; *measure.Runner implements it.
type Measurer interface {
	Measure(ctx context.Context, req measure.Request) (measure.RunResult, error)
}

// Builder turns a program into an executable; *program.MakeBuilder
// implements it.
type Builder interface {
	Build(ctx context.Context, p program.Program) (*program.BuildResult, error)
}

type RunConfig struct {
	Config *config.Config

	// OutputDir receives results/<bench>.<input>.json and summary.json.
	OutputDir string

	// BuildDir holds the per-program build workspaces. When empty, a
	// temporary directory is created and removed after the sweep.
	BuildDir  string
	NoCleanup bool

	MakeCommand string

	// MetricsFile, if set, receives the series in the Prometheus text format.
	MetricsFile string

	TeamcityOutput bool

	Output   io.Writer
	Log      *slog.Logger
	Progress func(msg string)

	// Measurer and Builder default to measure.Runner and program.MakeBuilder.
	Measurer Measurer
	Builder  Builder
}

// Report is what a finished sweep produced.
type Report struct {
	Summary *series.Summary
	Results []*series.Result
}

func Run(ctx context.Context, conf *RunConfig) (*Report, error) {
	r := newRunner(conf)
	err := r.Run(ctx)
	return r.report(), err
}
