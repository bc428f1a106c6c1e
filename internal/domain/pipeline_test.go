package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// recordingUI captures pipeline events for assertions.
type recordingUI struct {
	started  []string
	finished []m.StepResult
	notes    []string
}

func (r *recordingUI) Start(_ []m.Step)                 {}
func (r *recordingUI) StepStarted(id, _ string)         { r.started = append(r.started, id) }
func (r *recordingUI) StepFinished(result m.StepResult) { r.finished = append(r.finished, result) }
func (r *recordingUI) Info(message string)              { r.notes = append(r.notes, message) }
func (r *recordingUI) Summary(_ m.RunReport)            {}
func (r *recordingUI) Close()                           {}

func okStep(id string, ran *[]string) m.Step {
	return m.Step{
		ID:     id,
		Policy: m.Abort,
		Run: func(_ context.Context) error {
			*ran = append(*ran, id)
			return nil
		},
	}
}

func failingStep(id string, policy m.FailurePolicy, ran *[]string) m.Step {
	return m.Step{
		ID:     id,
		Policy: policy,
		Run: func(_ context.Context) error {
			*ran = append(*ran, id)
			return errors.New(id + " broke")
		},
	}
}

func TestPipeline_AllStepsSucceed(t *testing.T) {
	var ran []string

	ui := &recordingUI{}
	pipeline := NewPipeline(m.Project{Name: "demo", Root: "/tmp/demo"}, ui, []m.Step{
		okStep("one", &ran),
		okStep("two", &ran),
	})

	require.Equal(t, m.PipelinePending, pipeline.State())

	report, err := pipeline.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Equal(t, m.PipelineCompleted, pipeline.State())
	assert.Equal(t, m.PipelineCompleted, report.State)
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.Steps, 2)
	assert.Empty(t, report.Warnings())
}

func TestPipeline_WarnAndContinueDoesNotStopTheRun(t *testing.T) {
	var ran []string

	ui := &recordingUI{}
	pipeline := NewPipeline(m.Project{Name: "demo"}, ui, []m.Step{
		okStep("one", &ran),
		failingStep("flaky", m.WarnAndContinue, &ran),
		okStep("two", &ran),
	})

	report, err := pipeline.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "flaky", "two"}, ran)
	assert.Equal(t, m.PipelineCompleted, report.State)

	warned := report.Warnings()
	require.Len(t, warned, 1)
	assert.Equal(t, "flaky", warned[0].ID)
	assert.Contains(t, warned[0].Err, "flaky broke")
}

func TestPipeline_AbortHaltsSubsequentSteps(t *testing.T) {
	var ran []string

	ui := &recordingUI{}
	pipeline := NewPipeline(m.Project{Name: "demo"}, ui, []m.Step{
		okStep("one", &ran),
		failingStep("fatal", m.Abort, &ran),
		okStep("never", &ran),
	})

	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "step fatal")
	assert.Equal(t, []string{"one", "fatal"}, ran)
	assert.Equal(t, m.PipelineFailed, report.State)
	assert.Equal(t, m.PipelineFailed, pipeline.State())

	require.Len(t, report.Steps, 3)
	assert.Equal(t, m.StepOK, report.Steps[0].Status)
	assert.Equal(t, m.StepFailed, report.Steps[1].Status)
	assert.Equal(t, m.StepSkipped, report.Steps[2].Status)
	assert.Equal(t, []string{"one", "fatal"}, ui.started)
}

func TestPipeline_WarnStepHintIsSurfaced(t *testing.T) {
	var ran []string

	ui := &recordingUI{}
	step := failingStep("ui-init", m.WarnAndContinue, &ran)
	step.Hint = "try again later"

	pipeline := NewPipeline(m.Project{Name: "demo"}, ui, []m.Step{step})

	_, err := pipeline.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"try again later"}, ui.notes)
}

func TestPipeline_CancelledContextSkipsRemainingSteps(t *testing.T) {
	var ran []string

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := NewPipeline(m.Project{Name: "demo"}, &recordingUI{}, []m.Step{
		okStep("one", &ran),
	})

	report, err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.Empty(t, ran)
	assert.Equal(t, m.PipelineFailed, report.State)
}
