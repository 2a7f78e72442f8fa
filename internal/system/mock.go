package system

import (
	"fmt"
	"os/exec"
	"strings"
)

// MockExecutor records commands instead of running them, for tests.
type MockExecutor struct {
	// Commands holds the argv of every command received, in order.
	Commands [][]string
	// FailOn maps a command name (argv[0] basename) to the error its
	// execution should return.
	FailOn map[string]error
	// Outputs maps a command name to the bytes Output and
	// CombinedOutput should return.
	Outputs map[string][]byte
	// MissingBinaries lists names LookPath should not find.
	MissingBinaries []string
}

func (m *MockExecutor) record(cmd *exec.Cmd) error {
	m.Commands = append(m.Commands, cmd.Args)
	name := commandName(cmd)
	if err, ok := m.FailOn[name]; ok {
		return err
	}
	return nil
}

func (m *MockExecutor) Run(cmd *exec.Cmd) error {
	return m.record(cmd)
}

func (m *MockExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	err := m.record(cmd)
	return m.Outputs[commandName(cmd)], err
}

func (m *MockExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return m.Output(cmd)
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	for _, missing := range m.MissingBinaries {
		if missing == name {
			return "", fmt.Errorf("%s: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// Ran reports whether a command with the given name was executed.
func (m *MockExecutor) Ran(name string) bool {
	for _, args := range m.Commands {
		if len(args) > 0 && baseName(args[0]) == name {
			return true
		}
	}
	return false
}

func commandName(cmd *exec.Cmd) string {
	if len(cmd.Args) > 0 {
		return baseName(cmd.Args[0])
	}
	return baseName(cmd.Path)
}

func baseName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx != -1 {
		return path[idx+1:]
	}
	return path
}
