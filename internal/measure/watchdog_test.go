//go:build unix

package measure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type killRecorder struct {
	mu   sync.Mutex
	pids []int
	err  error
}

func (k *killRecorder) kill(pid int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pids = append(k.pids, pid)
	return k.err
}

func (k *killRecorder) calls() []int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]int(nil), k.pids...)
}

func newTestWatchdog(timeout time.Duration, rec *killRecorder) *Watchdog {
	wd := NewWatchdog(4242, timeout, discardLogger())
	wd.kill = rec.kill
	return wd
}

func TestWatchdogFiresAtDeadline(t *testing.T) {
	rec := &killRecorder{}
	wd := newTestWatchdog(20*time.Millisecond, rec)

	start := time.Now()
	wd.Start(context.Background())
	<-wd.done
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("watchdog fired after %v, before its deadline", elapsed)
	}

	if state := wd.Stop(); state != WatchdogFired {
		t.Errorf("Stop() = %v, want %v", state, WatchdogFired)
	}
	if calls := rec.calls(); len(calls) != 1 || calls[0] != 4242 {
		t.Errorf("kill calls = %v, want [4242]", calls)
	}
	if wd.Interrupted() {
		t.Error("Interrupted() = true for a deadline kill")
	}
}

func TestWatchdogAbandoned(t *testing.T) {
	rec := &killRecorder{}
	wd := newTestWatchdog(time.Hour, rec)
	wd.Start(context.Background())
	if state := wd.State(); state != WatchdogWaiting {
		t.Errorf("State() = %v, want %v", state, WatchdogWaiting)
	}

	if state := wd.Stop(); state != WatchdogAbandoned {
		t.Errorf("Stop() = %v, want %v", state, WatchdogAbandoned)
	}
	if calls := rec.calls(); len(calls) != 0 {
		t.Errorf("kill calls = %v, want none", calls)
	}

	if state := wd.Stop(); state != WatchdogAbandoned {
		t.Errorf("second Stop() = %v, want %v", state, WatchdogAbandoned)
	}
}

func TestWatchdogStopBeforeStart(t *testing.T) {
	rec := &killRecorder{}
	wd := newTestWatchdog(time.Millisecond, rec)
	if state := wd.Stop(); state != WatchdogAbandoned {
		t.Errorf("Stop() = %v, want %v", state, WatchdogAbandoned)
	}
	if state := wd.Stop(); state != WatchdogAbandoned {
		t.Errorf("second Stop() = %v, want %v", state, WatchdogAbandoned)
	}
	wd.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	if calls := rec.calls(); len(calls) != 0 {
		t.Errorf("kill calls = %v, want none", calls)
	}
}

func TestWatchdogInterrupted(t *testing.T) {
	rec := &killRecorder{}
	wd := newTestWatchdog(time.Hour, rec)

	ctx, cancel := context.WithCancel(context.Background())
	wd.Start(ctx)
	cancel()
	<-wd.done

	if state := wd.Stop(); state != WatchdogFired {
		t.Errorf("Stop() = %v, want %v", state, WatchdogFired)
	}
	if !wd.Interrupted() {
		t.Error("Interrupted() = false after context cancellation")
	}
}

func TestWatchdogKillErrorStillFires(t *testing.T) {
	rec := &killRecorder{err: errors.New("operation not permitted")}
	wd := newTestWatchdog(time.Millisecond, rec)
	wd.Start(context.Background())
	<-wd.done
	if state := wd.Stop(); state != WatchdogFired {
		t.Errorf("Stop() = %v, want %v", state, WatchdogFired)
	}
	if calls := rec.calls(); len(calls) != 1 {
		t.Errorf("kill calls = %v, want one", calls)
	}
}

func TestKillProcessGroupGone(t *testing.T) {
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Skipf("true is not runnable: %v", err)
	}
	if err := killProcessGroup(cmd.Process.Pid); err != nil {
		t.Errorf("killProcessGroup on a reaped child: %v", err)
	}
}
