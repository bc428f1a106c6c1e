package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// ProgressTUI renders a live step list with a spinner on the running step.
// Pipeline events are forwarded into the Bubble Tea program as messages.
type ProgressTUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewProgressTUI creates a ProgressTUI writing to output.
func NewProgressTUI(output io.Writer) *ProgressTUI {
	return &ProgressTUI{output: output}
}

type stepStartedMsg struct {
	id          string
	description string
}

type stepFinishedMsg struct {
	result m.StepResult
}

type infoMsg struct {
	text string
}

type runDoneMsg struct{}

// Start launches the program with the planned step list.
func (p *ProgressTUI) Start(steps []m.Step) {
	model := newProgressModel(steps)
	p.program = tea.NewProgram(model, tea.WithOutput(p.output))
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		_, _ = p.program.Run()
	}()
}

// StepStarted forwards the event to the running program.
func (p *ProgressTUI) StepStarted(id, description string) {
	if p.program != nil {
		p.program.Send(stepStartedMsg{id: id, description: description})
	}
}

// StepFinished forwards the event to the running program.
func (p *ProgressTUI) StepFinished(result m.StepResult) {
	if p.program != nil {
		p.program.Send(stepFinishedMsg{result: result})
	}
}

// Info forwards a note to the running program.
func (p *ProgressTUI) Info(message string) {
	if p.program != nil {
		p.program.Send(infoMsg{text: message})
	}
}

// Summary stops the live view and prints the outcome table beneath it.
func (p *ProgressTUI) Summary(report m.RunReport) {
	p.Close()
	fmt.Fprintf(p.output, "\n%s", renderSummaryTable(report))
}

// Close terminates the program and waits for its goroutine to drain.
func (p *ProgressTUI) Close() {
	if p.program == nil {
		return
	}

	p.program.Send(runDoneMsg{})
	<-p.done
	p.program = nil
}

// stepLine is the display state of a single step.
type stepLine struct {
	id          string
	description string
	status      m.StepStatus
	running     bool
}

// progressModel is the Bubble Tea model behind ProgressTUI.
type progressModel struct {
	spinner  spinner.Model
	steps    []stepLine
	notes    []string
	quitting bool
}

func newProgressModel(steps []m.Step) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	lines := make([]stepLine, 0, len(steps))
	for _, step := range steps {
		lines = append(lines, stepLine{id: step.ID, description: step.Description})
	}

	return progressModel{spinner: sp, steps: lines}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			pm.quitting = true
			return pm, tea.Quit
		}

		return pm, nil

	case stepStartedMsg:
		for i := range pm.steps {
			pm.steps[i].running = pm.steps[i].id == msg.id
		}

		return pm, nil

	case stepFinishedMsg:
		for i := range pm.steps {
			if pm.steps[i].id == msg.result.ID {
				pm.steps[i].running = false
				pm.steps[i].status = msg.result.Status
			}
		}

		return pm, nil

	case infoMsg:
		pm.notes = append(pm.notes, msg.text)
		return pm, nil

	case runDoneMsg:
		pm.quitting = true
		return pm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b []byte

	for _, line := range pm.steps {
		marker := " "

		switch {
		case line.running:
			marker = pm.spinner.View()
		case line.status != "":
			marker = statusGlyph(line.status)
		}

		b = append(b, fmt.Sprintf("%s %-14s %s\n", marker, line.id, dimStyle.Render(line.description))...)
	}

	for _, note := range pm.notes {
		b = append(b, fmt.Sprintf("  %s\n", dimStyle.Render(note))...)
	}

	return string(b)
}
