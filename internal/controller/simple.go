package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// statusGlyph renders the one-character marker for a step status.
func statusGlyph(status m.StepStatus) string {
	switch status {
	case m.StepOK:
		return okStyle.Render("✔")
	case m.StepWarned:
		return warnStyle.Render("!")
	case m.StepFailed:
		return failStyle.Render("✘")
	case m.StepSkipped:
		return dimStyle.Render("-")
	default:
		return "?"
	}
}

// SimpleUI prints one line per step event using the cobra command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start prints the number of planned steps.
func (s *SimpleUI) Start(steps []m.Step) {
	s.cmd.Printf("Running %d steps\n", len(steps))
}

// StepStarted announces a step.
func (s *SimpleUI) StepStarted(id, description string) {
	s.cmd.Printf("» %s: %s\n", id, description)
}

// StepFinished prints the step's terminal status.
func (s *SimpleUI) StepFinished(result m.StepResult) {
	line := fmt.Sprintf("%s %s", statusGlyph(result.Status), result.ID)
	if result.Err != "" {
		line += dimStyle.Render(" (" + result.Err + ")")
	}

	s.cmd.Println(line)
}

// Info prints an informational note.
func (s *SimpleUI) Info(message string) {
	s.cmd.Println(dimStyle.Render(message))
}

// Summary prints the run outcome table.
func (s *SimpleUI) Summary(report m.RunReport) {
	s.cmd.Printf("\n%s", renderSummaryTable(report))
}

// Close is a no-op for SimpleUI.
func (s *SimpleUI) Close() {}

// renderSummaryTable renders the per-step outcome table shared by both UIs.
func renderSummaryTable(report m.RunReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Step", "Status", "Duration"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})

	for _, step := range report.Steps {
		table.Append([]string{step.ID, string(step.Status), step.Duration.Round(time.Millisecond).String()})
	}

	table.SetFooter([]string{string(report.State), fmt.Sprintf("%d steps", len(report.Steps)), ""})
	table.Render()

	if warned := report.Warnings(); len(warned) > 0 {
		fmt.Fprintf(&buf, "\ncompleted with %d warning(s)\n", len(warned))
	}

	return buf.String()
}
