package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// toolOutputTail bounds how much combined child output is kept on a
// ToolError. The child's output is never forwarded to our own streams; disk
// side effects are the tool's only observable contract.
const toolOutputTail = 2048

// ToolRunnerAdapter abstracts external generator tool invocations so the
// domain layer can be tested without spawning processes.
type ToolRunnerAdapter interface {
	// Run executes name with args in workDir and returns nil only on a
	// zero exit status. Failures come back as *model.ToolError; retry and
	// timeout policy belong to the caller (via ctx).
	Run(ctx context.Context, workDir m.Path, name string, args ...string) error
}

// LocalToolRunnerAdapter runs tools with os/exec.
type LocalToolRunnerAdapter struct{}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter.
func NewLocalToolRunnerAdapter() *LocalToolRunnerAdapter {
	return &LocalToolRunnerAdapter{}
}

// Run executes the command in the given working directory.
func (a *LocalToolRunnerAdapter) Run(ctx context.Context, workDir m.Path, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = string(workDir)

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return &m.ToolError{
			Command: strings.Join(append([]string{name}, args...), " "),
			Dir:     string(workDir),
			Err:     err,
			Output:  tail(output.String(), toolOutputTail),
		}
	}

	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[len(s)-n:]
}
