//go:build !windows
// +build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// detachProcess starts the game in its own session so closing the
// launcher's terminal does not take it down.
func detachProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
