package measure

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status tells how a measured process terminated.
type Status int

const (
	StatusExited Status = iota
	StatusSignaled
	StatusTimedOut
	StatusInterrupted
	StatusLaunchFailed // never started, including requests rejected before launch
	StatusLost
)

// ExitCodeNotStarted is reported for processes that never ran.
const ExitCodeNotStarted = -1

func (s Status) String() string {
	switch s {
	case StatusExited:
		return "exited"
	case StatusSignaled:
		return "signaled"
	case StatusTimedOut:
		return "timed_out"
	case StatusInterrupted:
		return "interrupted"
	case StatusLaunchFailed:
		return "launch_failed"
	case StatusLost:
		return "lost"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "exited":
		*s = StatusExited
	case "signaled":
		*s = StatusSignaled
	case "timed_out":
		*s = StatusTimedOut
	case "interrupted":
		*s = StatusInterrupted
	case "launch_failed":
		*s = StatusLaunchFailed
	case "lost":
		*s = StatusLost
	default:
		return fmt.Errorf("unknown run status %q", text)
	}
	return nil
}

// RunResult is the outcome of a single measured execution.
// It is never modified after Measure returns it.
type RunResult struct {
	Index int
	Input float64

	StartTime time.Time
	StopTime  time.Time

	RunTime     time.Duration
	UserCPUTime time.Duration
	SysCPUTime  time.Duration

	// MaxRSS is the peak resident set size in KiB.
	MaxRSS int64

	ExitCode int
	Status   Status

	// Failed marks a sample whose timing fields carry no information.
	Failed bool
}

// TotalCPUTime is the user plus system CPU time of the child.
func (r RunResult) TotalCPUTime() time.Duration {
	return r.UserCPUTime + r.SysCPUTime
}

func (r RunResult) RunTimeMs() float64      { return Milliseconds(r.RunTime) }
func (r RunResult) RunTimeSeconds() float64 { return Seconds(r.RunTime) }
func (r RunResult) CPUTimeMs() float64      { return Milliseconds(r.TotalCPUTime()) }
func (r RunResult) CPUTimeSeconds() float64 { return Seconds(r.TotalCPUTime()) }

// TimedOut reports whether the watchdog killed the process at its deadline.
func (r RunResult) TimedOut() bool {
	return r.Status == StatusTimedOut
}

type runResultJSON struct {
	Index        int           `json:"index"`
	Input        float64       `json:"input"`
	RunTime      time.Duration `json:"run_time"`
	UserCPUTime  time.Duration `json:"user_cpu_time"`
	SysCPUTime   time.Duration `json:"sys_cpu_time"`
	TotalCPUTime time.Duration `json:"total_cpu_time"`
	MaxRSS       int64         `json:"max_rss"`
	ExitCode     int           `json:"exit_code"`
	Status       Status        `json:"status"`
	Failed       bool          `json:"failed"`
}

// MarshalJSON emits durations in nanoseconds. total_cpu_time is written for
// readers only and is recomputed on decode.
func (r RunResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(runResultJSON{
		Index:        r.Index,
		Input:        r.Input,
		RunTime:      r.RunTime,
		UserCPUTime:  r.UserCPUTime,
		SysCPUTime:   r.SysCPUTime,
		TotalCPUTime: r.TotalCPUTime(),
		MaxRSS:       r.MaxRSS,
		ExitCode:     r.ExitCode,
		Status:       r.Status,
		Failed:       r.Failed,
	})
}

func (r *RunResult) UnmarshalJSON(data []byte) error {
	var v runResultJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = RunResult{
		Index:       v.Index,
		Input:       v.Input,
		RunTime:     v.RunTime,
		UserCPUTime: v.UserCPUTime,
		SysCPUTime:  v.SysCPUTime,
		MaxRSS:      v.MaxRSS,
		ExitCode:    v.ExitCode,
		Status:      v.Status,
		Failed:      v.Failed,
	}
	return nil
}

func failedResult(index int, input float64, status Status) RunResult {
	return RunResult{
		Index:    index,
		Input:    input,
		ExitCode: ExitCodeNotStarted,
		Status:   status,
		Failed:   true,
	}
}
