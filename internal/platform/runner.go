package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// MaxOutputTail limits how much subprocess output is carried in errors
const MaxOutputTail = 512

// Runner executes an external command and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewExecRunner creates a runner backed by real processes
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name with args and waits for it. A non-zero exit is returned
// as an error that wraps *exec.ExitError and carries the output tail.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s failed: %w: %s", name, err, OutputTail(out))
	}
	return out, nil
}

// ExitCode extracts the process exit code from an error returned by a Runner.
// It returns -1 when err does not come from a finished process.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// OutputTail returns the last MaxOutputTail bytes of trimmed output
func OutputTail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > MaxOutputTail {
		s = s[len(s)-MaxOutputTail:]
	}
	return s
}
