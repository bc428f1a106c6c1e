package model

import (
	"context"
	"time"
)

// FailurePolicy decides what the pipeline does when a step fails.
type FailurePolicy string

const (
	// Abort stops the pipeline and marks the run failed.
	Abort FailurePolicy = "abort"
	// WarnAndContinue records the failure and keeps going.
	WarnAndContinue FailurePolicy = "warn"
)

// Step is one named unit of work in the scaffolding pipeline. Steps carry no
// state of their own; everything they need is closed over by Run.
type Step struct {
	ID          string
	Description string
	Policy      FailurePolicy
	Run         func(ctx context.Context) error
	// Hint is printed when the step fails, for failures with a known
	// remediation (e.g. the shadcn-vue init instability).
	Hint string
}

// StepStatus is the terminal status of a single step.
type StepStatus string

const (
	// StepOK means the step succeeded.
	StepOK StepStatus = "ok"
	// StepWarned means the step failed under WarnAndContinue.
	StepWarned StepStatus = "warned"
	// StepFailed means the step failed under Abort.
	StepFailed StepStatus = "failed"
	// StepSkipped means the step never ran because an earlier Abort fired.
	StepSkipped StepStatus = "skipped"
)

// StepResult records how one step ended.
type StepResult struct {
	ID          string        `yaml:"id"`
	Description string        `yaml:"description"`
	Status      StepStatus    `yaml:"status"`
	Err         string        `yaml:"error,omitempty"`
	Duration    time.Duration `yaml:"duration"`
}

// PipelineState is the lifecycle state of one pipeline run.
type PipelineState string

const (
	// PipelinePending is the state before Run is called.
	PipelinePending PipelineState = "pending"
	// PipelineRunning is the state while steps execute.
	PipelineRunning PipelineState = "running"
	// PipelineCompleted is the terminal success state, warnings included.
	PipelineCompleted PipelineState = "completed"
	// PipelineFailed is the terminal state after an Abort step failure.
	PipelineFailed PipelineState = "failed"
)

// RunReport is the persisted record of one scaffolding run.
type RunReport struct {
	RunID      string        `yaml:"run_id"`
	Project    string        `yaml:"project"`
	Root       Path          `yaml:"root"`
	State      PipelineState `yaml:"state"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Steps      []StepResult  `yaml:"steps"`
}

// Warnings returns the results of steps that failed but did not abort.
func (r RunReport) Warnings() []StepResult {
	var warned []StepResult

	for _, s := range r.Steps {
		if s.Status == StepWarned {
			warned = append(warned, s)
		}
	}

	return warned
}
