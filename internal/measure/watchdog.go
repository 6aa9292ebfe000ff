//go:build unix

package measure

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// WatchdogState is the lifecycle position of a Watchdog.
type WatchdogState int32

const (
	WatchdogIdle WatchdogState = iota
	WatchdogWaiting
	WatchdogFired
	WatchdogAbandoned
)

func (s WatchdogState) String() string {
	switch s {
	case WatchdogIdle:
		return "idle"
	case WatchdogWaiting:
		return "waiting"
	case WatchdogFired:
		return "fired"
	case WatchdogAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Watchdog kills a process group once its deadline passes or its context
// is cancelled. It only sends signals; reaping is left to the caller.
type Watchdog struct {
	pid     int
	timeout time.Duration
	log     *slog.Logger

	// kill is replaced in tests.
	kill func(pid int) error

	state       atomic.Int32
	interrupted atomic.Bool

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewWatchdog binds a watchdog to pid. The process is expected to lead its
// own process group, so the whole group is killed when the watchdog fires.
func NewWatchdog(pid int, timeout time.Duration, log *slog.Logger) *Watchdog {
	if log == nil {
		log = slog.Default()
	}
	return &Watchdog{
		pid:     pid,
		timeout: timeout,
		log:     log,
		kill:    killProcessGroup,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the waiting goroutine. It must be called at most once.
func (w *Watchdog) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.State() != WatchdogIdle {
		return
	}
	w.started = true
	w.state.Store(int32(WatchdogWaiting))
	go w.wait(ctx)
}

func (w *Watchdog) wait(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		w.log.Warn("benchmark timed out", "pid", w.pid, "timeout", w.timeout)
		w.fire()
	case <-ctx.Done():
		w.log.Warn("benchmark interrupted", "pid", w.pid, "err", ctx.Err())
		w.interrupted.Store(true)
		w.fire()
	case <-w.stop:
		w.state.Store(int32(WatchdogAbandoned))
	}
}

func (w *Watchdog) fire() {
	if err := w.kill(w.pid); err != nil {
		w.log.Error("kill timed out process", "pid", w.pid, "err", err)
	}
	w.state.Store(int32(WatchdogFired))
}

// Stop abandons a waiting watchdog and blocks until its goroutine is gone,
// so no signal is sent after Stop returns. It returns the final state.
func (w *Watchdog) Stop() WatchdogState {
	w.stopOnce.Do(func() {
		close(w.stop)
	})

	w.mu.Lock()
	if !w.started {
		w.state.CompareAndSwap(int32(WatchdogIdle), int32(WatchdogAbandoned))
		w.mu.Unlock()
		return w.State()
	}
	w.mu.Unlock()

	<-w.done
	return w.State()
}

func (w *Watchdog) State() WatchdogState {
	return WatchdogState(w.state.Load())
}

// Interrupted reports whether the watchdog fired because of its context.
func (w *Watchdog) Interrupted() bool {
	return w.interrupted.Load()
}

// killProcessGroup sends SIGKILL to the group led by pid. A group that is
// already gone is not an error.
func killProcessGroup(pid int) error {
	err := unix.Kill(-pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
