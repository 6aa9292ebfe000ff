package measure

import (
	"errors"
	"os/exec"

	"golang.org/x/sys/unix"
)

// awaitExit blocks until the child terminates, disarms the watchdog and
// only then reaps the child. Between waitid(WNOWAIT) and the reap the child
// is a zombie, so its pid and process group cannot be reused under the
// watchdog.
func awaitExit(cmd *exec.Cmd, wd *Watchdog) (WatchdogState, error) {
	if err := waitNoReap(cmd.Process.Pid); err != nil {
		wd.log.Debug("waitid failed, reaping directly", "pid", cmd.Process.Pid, "err", err)
		waitErr := cmd.Wait()
		return wd.Stop(), waitErr
	}
	state := wd.Stop()
	return state, cmd.Wait()
}

func waitNoReap(pid int) error {
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}
