package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/controller"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// Pipeline runs an ordered step list against one project. One instance per
// run, no persistence across runs; the filesystem is the only shared state.
type Pipeline struct {
	project m.Project
	steps   []m.Step
	ui      controller.UI
	state   m.PipelineState
}

// NewPipeline constructs a pipeline in the Pending state.
func NewPipeline(project m.Project, ui controller.UI, steps []m.Step) *Pipeline {
	return &Pipeline{
		project: project,
		steps:   steps,
		ui:      ui,
		state:   m.PipelinePending,
	}
}

// State returns the pipeline's current lifecycle state.
func (p *Pipeline) State() m.PipelineState {
	return p.state
}

// Run executes the steps strictly in declaration order. A failing Abort step
// marks every remaining step skipped and fails the run; a failing
// WarnAndContinue step is recorded and execution proceeds. The run report is
// returned in both cases. Failed is reachable only through an Abort step.
func (p *Pipeline) Run(ctx context.Context) (m.RunReport, error) {
	p.state = m.PipelineRunning

	report := m.RunReport{
		RunID:     uuid.NewString(),
		Project:   p.project.Name,
		Root:      p.project.Root,
		StartedAt: time.Now(),
	}

	p.ui.Start(p.steps)

	var abortErr error

	for _, step := range p.steps {
		if abortErr != nil {
			report.Steps = append(report.Steps, m.StepResult{
				ID:          step.ID,
				Description: step.Description,
				Status:      m.StepSkipped,
			})

			continue
		}

		if err := ctx.Err(); err != nil {
			abortErr = err

			report.Steps = append(report.Steps, m.StepResult{
				ID:          step.ID,
				Description: step.Description,
				Status:      m.StepSkipped,
			})

			continue
		}

		p.ui.StepStarted(step.ID, step.Description)

		started := time.Now()
		err := step.Run(ctx)

		result := m.StepResult{
			ID:          step.ID,
			Description: step.Description,
			Status:      m.StepOK,
			Duration:    time.Since(started),
		}

		if err != nil {
			result.Err = err.Error()

			switch step.Policy {
			case m.WarnAndContinue:
				result.Status = m.StepWarned

				slog.Warn("Step failed, continuing", "step", step.ID, "error", err)

				if step.Hint != "" {
					p.ui.Info(step.Hint)
				}
			default:
				// An unset policy aborts: silently continuing past an
				// unclassified failure is the worse default.
				result.Status = m.StepFailed
				abortErr = fmt.Errorf("step %s: %w", step.ID, err)

				slog.Error("Step failed", "step", step.ID, "error", err)
			}
		}

		report.Steps = append(report.Steps, result)
		p.ui.StepFinished(result)
	}

	report.FinishedAt = time.Now()

	if abortErr != nil {
		p.state = m.PipelineFailed
	} else {
		p.state = m.PipelineCompleted
	}

	report.State = p.state

	return report, abortErr
}
