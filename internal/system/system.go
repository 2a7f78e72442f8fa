// Package system wraps the host facilities wslforge depends on:
// external commands, the WSL environment marker and disk space.
package system

import (
	"os/exec"
)

// Executor defines a common interface for running external commands,
// so the build and startup pipelines can be tested without docker or
// systemctl installed.
type Executor interface {
	Run(cmd *exec.Cmd) error
	Output(cmd *exec.Cmd) ([]byte, error)
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
	LookPath(name string) (string, error)
}

// LiveExecutor runs commands on the real system.
type LiveExecutor struct{}

func (LiveExecutor) Run(cmd *exec.Cmd) error {
	return cmd.Run()
}

func (LiveExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	return cmd.Output()
}

func (LiveExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

func (LiveExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
