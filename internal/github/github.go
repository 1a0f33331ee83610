package github

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-githubactions"
	"github.com/teammerge/teammerge/internal/env"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/markdown"
	"github.com/teammerge/teammerge/internal/vcs"
)

type MergeSummary struct {
	Workspace   string
	Comment     string
	WorkItemIDs []int
}

// Markdown renders the summary as a step summary document.
func (s MergeSummary) Markdown() string {
	comment := s.Comment
	if comment == "" {
		comment = "_none_"
	}
	workItems := vcs.FormatWorkItemReferences(s.WorkItemIDs)
	if workItems == "" {
		workItems = "_none_"
	}

	table := markdown.CreateMarkdownTable([][]string{
		{"Workspace", "Check-in comment", "Work items"},
		{s.Workspace, comment, workItems},
	})

	return fmt.Sprintf("# Merge Summary\n\n%s\n", table)
}

// GenerateMergeSummary adds the summary to the job's step summary when
// running inside GitHub Actions and does nothing otherwise.
func GenerateMergeSummary(ctx context.Context, summary MergeSummary) {
	defer func() {
		if r := recover(); r != nil {
			if env.IsGithubDebugMode() {
				log.From(ctx).Printf("::debug::%v\n", r)
			}
		}
	}()

	if !env.IsGithubAction() {
		return
	}

	githubactions.AddStepSummary(summary.Markdown())
}
