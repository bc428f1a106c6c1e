// Package controller provides output adapters for reporting scaffolding
// progress and results.
package controller

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// UI receives step-completion events from the pipeline. Implementations can
// use different output methods (plain text, live TUI).
type UI interface {
	// Start announces the full step list before the pipeline runs.
	Start(steps []m.Step)
	// StepStarted announces that a step began executing.
	StepStarted(id, description string)
	// StepFinished reports a step's terminal status.
	StepFinished(result m.StepResult)
	// Info prints an informational note outside the step lifecycle.
	Info(message string)
	// Summary renders the final run report.
	Summary(report m.RunReport)
	// Close releases any UI resources.
	Close()
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI selects the live TUI for interactive terminals and the plain
// printer otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewProgressTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}
