package workflowTracking

import (
	"fmt"
	"strings"

	"github.com/teammerge/teammerge/internal/charm/styles"
	"github.com/teammerge/teammerge/internal/log"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusFailed    Status = "failed"
	StatusSucceeded Status = "success"
	StatusSkipped   Status = "skipped"
)

// WorkflowStep is a node in the tree of phases a command went through.
type WorkflowStep struct {
	name              string
	status            Status
	statusExplanation string
	substeps          []*WorkflowStep
	logger            log.Logger
}

func NewWorkflowStep(name string, logger log.Logger) *WorkflowStep {
	return &WorkflowStep{
		name:     name,
		status:   StatusRunning,
		substeps: []*WorkflowStep{},
		logger:   logger,
	}
}

func (w *WorkflowStep) Name() string {
	return w.name
}

func (w *WorkflowStep) Status() Status {
	return w.status
}

func (w *WorkflowStep) Substeps() []*WorkflowStep {
	return w.substeps
}

func (w *WorkflowStep) NewSubstep(name string) *WorkflowStep {
	if w == nil {
		return nil
	}

	substep := NewWorkflowStep(name, w.logger)

	if len(w.substeps) > 0 {
		// moving on means the previous substep worked
		w.substeps[len(w.substeps)-1].Succeed()
	}
	w.substeps = append(w.substeps, substep)

	w.logger.PrintfStyled(styles.Dimmed, "» %s...", name)

	return substep
}

func (w *WorkflowStep) Skip(reason string) {
	w.status = StatusSkipped
	w.statusExplanation = reason
	w.logger.Infof("Step skipped: %s (reason: %s)", w.name, reason)
}

func (w *WorkflowStep) Succeed() {
	if w.status == StatusRunning {
		w.status = StatusSucceeded
	}
}

// Fail marks the step failed along with the last substep that was still
// running, so the tree points at where things went wrong.
func (w *WorkflowStep) Fail(reason string) {
	if n := len(w.substeps); n > 0 {
		w.substeps[n-1].Fail(reason)
		reason = ""
	}

	if w.status == StatusRunning {
		w.status = StatusFailed
		w.statusExplanation = reason
	}
}

// Finalize closes every running step in the tree.
func (w *WorkflowStep) Finalize(err error) {
	if err == nil {
		w.succeedAll()
		return
	}

	w.Fail(err.Error())
	w.succeedAll()
}

func (w *WorkflowStep) succeedAll() {
	w.Succeed()
	for _, substep := range w.substeps {
		substep.succeedAll()
	}
}

func (w *WorkflowStep) PrettyString() string {
	return w.toString(0, 0)
}

// LastStepToString summarises the deepest last step, for example
// "failed: Merge -> Resolving conflicts".
func (w *WorkflowStep) LastStepToString() string {
	step := w
	names := []string{}

	for {
		names = append(names, step.name)

		if len(step.substeps) == 0 {
			break
		}
		step = step.substeps[len(step.substeps)-1]
	}

	return fmt.Sprintf("%s: %s", step.status, strings.Join(names, " -> "))
}

func (w *WorkflowStep) toString(parentIndent, indent int) string {
	builder := &strings.Builder{}

	indentString := ""
	if indent > 0 {
		terminator := "└─"
		if indent == parentIndent {
			terminator = "  "
		}
		indentString = strings.Repeat("  ", indent-1) + terminator
	}

	style := styles.Info
	switch w.status {
	case StatusFailed:
		style = styles.Error
	case StatusSucceeded:
		style = styles.Success
	case StatusSkipped:
		style = styles.Dimmed
	}

	statusStyle := style.Bold(false).Italic(true)

	builder.WriteString(style.Render(indentString + w.name))
	builder.WriteString(statusStyle.Render(" - " + string(w.status)))

	if w.statusExplanation != "" {
		builder.WriteString(statusStyle.Render(fmt.Sprintf(" (%s)", w.statusExplanation)))
	}

	for _, child := range w.substeps {
		builder.WriteString("\n")
		builder.WriteString(child.toString(indent, indent+1))
	}

	return builder.String()
}
