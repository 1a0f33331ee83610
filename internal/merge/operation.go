package merge

import (
	"context"
	"fmt"

	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/log"
	"go.uber.org/zap"
)

// Operation merges changeset ranges. An Operation may serve any number of
// sequential requests but never two at once.
type Operation struct {
	vcs      VersionControl
	notifier Notifier
	settings Settings
}

func NewOperation(vcs VersionControl, notifier Notifier, settings Settings) *Operation {
	return &Operation{
		vcs:      vcs,
		notifier: notifier,
		settings: settings,
	}
}

// Execute runs the merge described by req. Each step only runs if the one
// before it succeeded. Errors from the version-control service and the
// notifier are returned unchanged; the operation's own stop conditions are
// reported as *AbortedError.
func (o *Operation) Execute(ctx context.Context, req Request, progress Progress) error {
	if progress == nil {
		progress = noProgress{}
	}
	defer progress.Clear()

	if err := req.Validate(); err != nil {
		return err
	}

	logger := log.From(ctx).With(zap.String("workspace", req.Workspace.String()))

	if err := o.checkPendingChanges(ctx, req.Workspace, progress); err != nil {
		return err
	}

	if err := o.getLatestVersion(ctx, req, progress); err != nil {
		return err
	}

	progress.Report(msgMergingBranches)

	excludedTypes := o.settings.GetStringSlice(config.WorkItemTypesToExclude)
	excludeWorkItems := o.settings.GetBool(config.ExcludeWorkItemsForMerge)

	minChangeset, maxChangeset := req.changesetRange()
	if err := o.vcs.MergeBranches(ctx, req.Workspace, req.SourceBranch, req.TargetBranch, minChangeset, maxChangeset); err != nil {
		return err
	}

	logger.Infof("Merged changesets %d-%d from %s into %s", minChangeset, maxChangeset, req.SourceBranch, req.TargetBranch)

	workItemIDs := []int{}
	if !excludeWorkItems {
		progress.Report(msgCollectingWorkItems)

		ids, err := o.vcs.GetWorkItemIDs(ctx, req.Workspace, req.OrderedChangesetIDs, excludedTypes)
		if err != nil {
			return err
		}
		if ids != nil {
			workItemIDs = ids
		}
	}

	comment := Synthesize(ctx, o.settings, CommentFacts{
		SourceBranch:      req.SourceBranch,
		TargetBranch:      req.TargetBranch,
		WorkItemIDs:       workItemIDs,
		ChangesetIDs:      req.OrderedChangesetIDs,
		ShowLatestVersion: o.settings.GetBool(config.ShowLatestVersionInComment),
	})

	progress.Report(msgNotifying)

	return o.notifier.Notify(ctx, req.Workspace, comment, workItemIDs)
}

func (o *Operation) checkPendingChanges(ctx context.Context, ws Workspace, progress Progress) error {
	if !o.settings.GetBool(config.WarnOnPendingChanges) {
		return nil
	}

	progress.Report(msgCheckingPendingChanges)

	pending, err := o.vcs.HasIncludedPendingChanges(ctx, ws)
	if err != nil {
		return err
	}
	if pending {
		return abort(reasonPendingChanges)
	}

	return nil
}

func (o *Operation) getLatestVersion(ctx context.Context, req Request, progress Progress) error {
	selection, err := ParseBranchLatestSelection(o.settings.GetString(config.LatestVersionBranch))
	if err != nil {
		return err
	}

	var branches []string

	switch selection {
	case BranchNone:
		return nil
	case BranchSource:
		progress.Report(fmt.Sprintf(msgGettingLatestVersion, selection.Description(), req.SourceBranch))
		branches = []string{req.SourceBranch}
	case BranchTarget:
		progress.Report(fmt.Sprintf(msgGettingLatestVersion, selection.Description(), req.TargetBranch))
		branches = []string{req.TargetBranch}
	case BranchSourceAndTarget:
		progress.Report(fmt.Sprintf(msgGettingLatestBoth, selection.Description(), req.SourceBranch, req.TargetBranch))
		branches = []string{req.TargetBranch, req.SourceBranch}
	default:
		return fmt.Errorf("unsupported latest version branch %s", selection)
	}

	if err := o.vcs.GetLatestVersion(ctx, req.Workspace, branches...); err != nil {
		return err
	}

	return o.checkConflicts(ctx, req.Workspace, progress)
}

func (o *Operation) checkConflicts(ctx context.Context, ws Workspace, progress Progress) error {
	if !o.settings.GetBool(config.ResolveConflicts) {
		conflicts, err := o.vcs.HasConflicts(ctx, ws)
		if err != nil {
			return err
		}
		if conflicts {
			return abort(reasonConflicts)
		}
		return nil
	}

	progress.Report(msgResolvingConflicts)

	if err := o.vcs.ResolveConflicts(ctx, ws); err != nil {
		return err
	}

	conflicts, err := o.vcs.HasConflicts(ctx, ws)
	if err != nil {
		return err
	}
	if conflicts {
		return abort(reasonUnresolvedConflicts)
	}

	return nil
}
