package launch

import (
	"fmt"
	"os/exec"
)

// Process is the handle of a spawned game. The host owns it only long
// enough to hand it off.
type Process struct {
	Pid  int
	Path string
	Args []string
	Dir  string

	cmd *exec.Cmd
}

// Wait blocks until the game exits.
func (p *Process) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("game process %d: %w", p.Pid, err)
	}
	return nil
}

// Release detaches the handle; the game keeps running after the host exits.
func (p *Process) Release() error {
	if err := p.cmd.Process.Release(); err != nil {
		return fmt.Errorf("could not release process %d: %w", p.Pid, err)
	}
	return nil
}
