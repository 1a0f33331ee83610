// Package notify delivers the result of a merge: the check-in comment and
// the work items to associate with the pending change.
package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/teammerge/teammerge/internal/charm/styles"
	"github.com/teammerge/teammerge/internal/git"
	"github.com/teammerge/teammerge/internal/github"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/merge"
	"github.com/teammerge/teammerge/internal/vcs"
	"go.uber.org/zap"
)

// TemplateFile is written inside the .git directory and registered as the
// repository's commit.template.
const TemplateFile = "TEAMMERGE_MSG"

const workItemsTrailer = "Work items: "

// RepositoryOpener finds the working copy of a workspace.
type RepositoryOpener interface {
	Repository(ws merge.Workspace) (*git.Repository, error)
}

// CommitTemplate prepares the next `git commit` in the workspace so it starts
// from the synthesized comment and references the work items.
type CommitTemplate struct {
	repos RepositoryOpener
}

func NewCommitTemplate(repos RepositoryOpener) *CommitTemplate {
	return &CommitTemplate{repos: repos}
}

func (n *CommitTemplate) Notify(ctx context.Context, ws merge.Workspace, comment string, workItemIDs []int) error {
	repo, err := n.repos.Repository(ws)
	if err != nil {
		return err
	}

	path := filepath.Join(repo.GitDir(), TemplateFile)
	if err := os.WriteFile(path, []byte(CommitMessage(comment, workItemIDs)), 0o644); err != nil {
		return fmt.Errorf("failed to write commit template: %w", err)
	}

	if err := repo.SetLocalConfig("commit", "template", path); err != nil {
		return err
	}

	log.From(ctx).Info("Commit template prepared", zap.String("path", path))

	return nil
}

// CommitMessage is the comment followed by a work item trailer when there
// are work items.
func CommitMessage(comment string, workItemIDs []int) string {
	var b strings.Builder
	b.WriteString(comment)
	b.WriteString("\n")

	if len(workItemIDs) > 0 {
		b.WriteString("\n")
		b.WriteString(workItemsTrailer)
		b.WriteString(vcs.FormatWorkItemReferences(workItemIDs))
		b.WriteString("\n")
	}

	return b.String()
}

// Console reports the result to the user.
type Console struct{}

func (Console) Notify(ctx context.Context, ws merge.Workspace, comment string, workItemIDs []int) error {
	logger := log.From(ctx)

	lines := []string{
		fmt.Sprintf("Workspace: %s", ws),
	}
	if comment != "" {
		lines = append(lines, fmt.Sprintf("Comment: %s", comment))
	}
	if len(workItemIDs) > 0 {
		lines = append(lines, fmt.Sprintf("Work items: %s", vcs.FormatWorkItemReferences(workItemIDs)))
	}

	logger.Println(styles.RenderSuccessMessage("Merge ready to check in", lines...))

	return nil
}

// GithubSummary writes a step summary when running in GitHub Actions.
type GithubSummary struct{}

func (GithubSummary) Notify(ctx context.Context, ws merge.Workspace, comment string, workItemIDs []int) error {
	github.GenerateMergeSummary(ctx, github.MergeSummary{
		Workspace:   ws.String(),
		Comment:     comment,
		WorkItemIDs: workItemIDs,
	})

	return nil
}

// Multi notifies each notifier in order. A failing notifier does not stop
// the ones after it; all failures are returned together.
type Multi []merge.Notifier

func (m Multi) Notify(ctx context.Context, ws merge.Workspace, comment string, workItemIDs []int) error {
	var errs *multierror.Error

	for _, n := range m {
		if err := n.Notify(ctx, ws, comment, workItemIDs); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}
