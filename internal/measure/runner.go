//go:build unix

// Package measure runs benchmark executables under a timeout guard and
// records their wall-clock time and OS resource usage.
package measure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

var (
	// ErrInterrupted is returned when the measurement context is cancelled
	// while the child runs. The child is killed and the sample is failed.
	ErrInterrupted = errors.New("measurement interrupted")

	// ErrNoResult is returned when the supervising goroutine ends without
	// delivering a result.
	ErrNoResult = errors.New("measurement ended without a result")

	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// Request describes one measured execution.
type Request struct {
	Index   int
	Command []string
	Input   float64
	Timeout time.Duration
}

// Runner measures benchmark executables one at a time.
type Runner struct {
	Log *slog.Logger
	Dir string   // working directory of the child; empty means the current one
	Env []string // environment of the child; nil means the current one

	// Measurements share CPU and wall clock, so they must never overlap.
	mu sync.Mutex
}

func NewRunner(log *slog.Logger) *Runner {
	return &Runner{Log: log}
}

// Measure launches req.Command, waits for it to finish or be killed by the
// watchdog, and returns its timing and resource usage.
//
// A command that cannot be started yields a failed result and a nil error.
// A request with a non-positive timeout is rejected before any launch: it
// yields a failed StatusLaunchFailed result and ErrInvalidTimeout.
// Cancelling ctx kills the child and returns ErrInterrupted. If the
// supervisor dies without a result, Measure returns a failed StatusLost
// result and ErrNoResult.
func (r *Runner) Measure(ctx context.Context, req Request) (RunResult, error) {
	if req.Timeout <= 0 {
		return failedResult(req.Index, req.Input, StatusLaunchFailed),
			fmt.Errorf("%w: %v", ErrInvalidTimeout, req.Timeout)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return failedResult(req.Index, req.Input, StatusInterrupted),
			fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	results := make(chan RunResult, 1)
	go r.supervise(ctx, req, results)

	result, ok := <-results
	if !ok {
		return failedResult(req.Index, req.Input, StatusLost), ErrNoResult
	}
	if result.Status == StatusInterrupted {
		return result, fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
	}
	return result, nil
}

func (r *Runner) supervise(ctx context.Context, req Request, results chan<- RunResult) {
	defer close(results)
	defer func() {
		if p := recover(); p != nil {
			r.logger().Error("measurement supervisor panicked", "index", req.Index, "panic", p)
		}
	}()

	results <- r.run(ctx, req)
}

func (r *Runner) run(ctx context.Context, req Request) RunResult {
	log := r.logger().With("index", req.Index, "input", req.Input)

	if len(req.Command) == 0 {
		log.Warn("benchmark failed", "err", "empty command")
		return failedResult(req.Index, req.Input, StatusLaunchFailed)
	}

	cmd := exec.Command(req.Command[0], req.Command[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	log.Debug("starting benchmark", "command", cmd.String())

	start := time.Now()
	if err := startProcess(cmd); err != nil {
		log.Warn("benchmark failed", "command", req.Command[0], "err", err)
		return failedResult(req.Index, req.Input, StatusLaunchFailed)
	}

	wd := NewWatchdog(cmd.Process.Pid, req.Timeout, log)
	wd.Start(ctx)

	state, waitErr := awaitExit(cmd, wd)
	stop := time.Now()

	ps := cmd.ProcessState
	if ps == nil {
		log.Warn("benchmark failed", "err", waitErr)
		return failedResult(req.Index, req.Input, StatusLost)
	}

	log.Debug("finished benchmark", "elapsed", stop.Sub(start), "watchdog", state)

	if state == WatchdogFired && wd.Interrupted() {
		result := failedResult(req.Index, req.Input, StatusInterrupted)
		result.ExitCode = exitCodeOf(ps)
		return result
	}

	u := usageOf(ps)
	result := RunResult{
		Index:       req.Index,
		Input:       req.Input,
		StartTime:   start,
		StopTime:    stop,
		RunTime:     stop.Sub(start),
		UserCPUTime: u.user,
		SysCPUTime:  u.system,
		MaxRSS:      u.maxRSS,
		ExitCode:    exitCodeOf(ps),
		Status:      statusOf(ps),
	}
	if state == WatchdogFired && killed(ps) {
		result.Status = StatusTimedOut
	}
	return result
}

// startProcess is replaced in tests.
var startProcess = (*exec.Cmd).Start

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// exitCodeOf follows the shell convention of 128+signal for killed children.
func exitCodeOf(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}

func statusOf(ps *os.ProcessState) Status {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return StatusSignaled
	}
	return StatusExited
}

func killed(ps *os.ProcessState) bool {
	ws, ok := ps.Sys().(syscall.WaitStatus)
	return ok && ws.Signaled() && ws.Signal() == syscall.SIGKILL
}
