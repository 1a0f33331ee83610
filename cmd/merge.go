package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/git"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/merge"
	"github.com/teammerge/teammerge/internal/model"
	"github.com/teammerge/teammerge/internal/model/flag"
	"github.com/teammerge/teammerge/internal/notify"
	"github.com/teammerge/teammerge/internal/vcs"
	"github.com/teammerge/teammerge/internal/workflowTracking"
	"go.uber.org/zap"
)

type mergeFlags struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Changesets []int  `json:"changesets"`
	All        bool   `json:"all"`
	Workspace  string `json:"workspace"`
}

var sourceFlag = flag.StringFlag{
	Name:        "source",
	Shorthand:   "s",
	Description: "branch to merge from (defaults to the last merge's source branch)",
	Completions: completeBranches,
}

var targetFlag = flag.StringFlag{
	Name:        "target",
	Shorthand:   "t",
	Description: "branch to merge into (defaults to the last merge's target branch)",
	Completions: completeBranches,
}

var workspaceFlag = flag.StringFlag{
	Name:        "workspace",
	Shorthand:   "w",
	Description: "configured workspace to merge in (defaults to the working copy holding the current directory)",
}

var mergeCmd = &model.ExecutableCommand[mergeFlags]{
	Usage: "merge",
	Short: "Merge a range of changesets from the source branch into the target branch",
	Long: `Merge a contiguous range of pending changesets from the source branch into the target branch.

The merge is left uncommitted. The check-in comment is written to the repository's commit template, so the next 'git commit' starts from it.
List the pending changesets with 'teammerge changesets'.`,
	Run: runMerge,
	Flags: []flag.Flag{
		sourceFlag,
		targetFlag,
		flag.IntSliceFlag{
			Name:        "changesets",
			Shorthand:   "c",
			Description: "ids of the changesets to merge; they must be contiguous among the pending changesets",
		},
		flag.BooleanFlag{
			Name:        "all",
			Shorthand:   "a",
			Description: "merge every pending changeset",
		},
		workspaceFlag,
	},
}

func runMerge(ctx context.Context, flags mergeFlags) error {
	logger := log.From(ctx)
	settings := config.Current()

	if err := merge.ValidateSettings(settings); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	svc, workspaces, err := newVersionControl(settings)
	if err != nil {
		return err
	}

	ws, repo, err := resolveWorkspace(svc, workspaces, flags.Workspace)
	if err != nil {
		return err
	}

	branches, err := resolveBranches(settings, repo.Root(), flags.Source, flags.Target)
	if err != nil {
		return err
	}

	unlock, err := lockWorkspace(ctx, repo.Root())
	if err != nil {
		return err
	}
	defer unlock()

	pending, err := svc.PendingChangesets(ctx, ws, branches.SourceBranch, branches.TargetBranch)
	if err != nil {
		return err
	}

	selected := flags.Changesets
	if len(selected) == 0 && (flags.All || settings.GetBool(config.AutoSelectAllChangesets)) {
		selected = vcs.AllChangesetIDs(pending)
	}

	ids, err := vcs.SelectChangesets(pending, selected)
	if err != nil {
		return errors.Wrapf(err, "cannot merge %s --> %s", branches.SourceBranch, branches.TargetBranch)
	}

	req := merge.Request{
		Workspace:           ws,
		SourceBranch:        branches.SourceBranch,
		TargetBranch:        branches.TargetBranch,
		OrderedChangesetIDs: ids,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	logger.Info("Merging changesets",
		zap.String("workspace", ws.String()),
		zap.String("source", req.SourceBranch),
		zap.String("target", req.TargetBranch),
		zap.Ints("changesets", ids),
	)

	notifier := notify.Multi{
		notify.NewCommitTemplate(svc),
		notify.Console{},
		notify.GithubSummary{},
	}

	step := workflowTracking.NewWorkflowStep("Merge", logger)
	err = merge.NewOperation(svc, notifier, settings).Execute(ctx, req, workflowTracking.NewStepProgress(step))
	step.Finalize(err)
	logger.Debug("Merge finished", zap.String("step", step.LastStepToString()))

	if err != nil {
		logger.PrintlnUnstyled(step.PrettyString())
		reportConflicts(logger, repo)
		return err
	}

	if err := config.SaveBranchDefaults(repo.Root(), branches); err != nil {
		logger.Warnf("failed to save branch defaults: %s", err.Error())
	}

	return nil
}

// reportConflicts warns about every path left unmerged in repo.
func reportConflicts(logger log.Logger, repo *git.Repository) {
	paths, err := repo.ConflictedPaths()
	if err != nil {
		logger.Debug("failed to list conflicts", zap.Error(err))
		return
	}

	for _, p := range paths {
		logger.WithAssociatedFile(p).Warnf("%s has unresolved conflicts", p)
	}
}
