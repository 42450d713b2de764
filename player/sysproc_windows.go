//go:build windows

package player

import (
	"os/exec"
	"time"
)

func detach(*exec.Cmd) {}

// terminate kills the child. Windows has no polite equivalent for console-less children.
func terminate(cmd *exec.Cmd, exited <-chan struct{}, _ time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}

	_ = cmd.Process.Kill()
	<-exited
}
