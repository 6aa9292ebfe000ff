//go:build unix

package measure

import (
	"os"
	"syscall"
	"time"
)

// usage is the resource accounting of one reaped child.
type usage struct {
	user   time.Duration
	system time.Duration
	maxRSS int64 // KiB
}

// usageOf reads the rusage record that the reaping wait call filled in for
// exactly this child.
func usageOf(state *os.ProcessState) usage {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return usage{}
	}
	return usage{
		user:   time.Duration(ru.Utime.Nano()),
		system: time.Duration(ru.Stime.Nano()),
		maxRSS: int64(ru.Maxrss) / maxRSSDivisor,
	}
}
