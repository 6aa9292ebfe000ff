//go:build unix && !linux

package measure

import "os/exec"

// awaitExit reaps the child first and disarms the watchdog afterwards.
// A kill racing with the reap hits a vanished group and is ignored.
func awaitExit(cmd *exec.Cmd, wd *Watchdog) (WatchdogState, error) {
	waitErr := cmd.Wait()
	return wd.Stop(), waitErr
}
