package workflowTracking

import "github.com/teammerge/teammerge/internal/merge"

// StepProgress turns every reported action into a substep of step.
type StepProgress struct {
	step   *WorkflowStep
	closed bool
}

var _ merge.Progress = (*StepProgress)(nil)

func NewStepProgress(step *WorkflowStep) *StepProgress {
	return &StepProgress{step: step}
}

func (p *StepProgress) Report(action string) {
	if p.closed {
		return
	}
	p.step.NewSubstep(action)
}

// Clear stops recording. Whether the last substep worked is left to
// WorkflowStep.Finalize.
func (p *StepProgress) Clear() {
	p.closed = true
}
