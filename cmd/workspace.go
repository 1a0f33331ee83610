package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/env"
	"github.com/teammerge/teammerge/internal/git"
	"github.com/teammerge/teammerge/internal/locks"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/merge"
	"github.com/teammerge/teammerge/internal/vcs"
)

const (
	lockRetryDelay = 500 * time.Millisecond
	lockTimeout    = 2 * time.Minute
)

func newVersionControl(settings *config.Settings) (*vcs.Service, map[string]config.WorkspaceEntry, error) {
	workspaces, err := settings.Workspaces()
	if err != nil {
		return nil, nil, err
	}

	svc := vcs.NewService(vcs.Options{
		Workspaces:      workspaces,
		WorkItemCatalog: settings.GetString(config.WorkItemCatalog),
		AccessToken:     env.GitToken(),
	})

	return svc, workspaces, nil
}

// resolveWorkspace picks the named workspace, or the working copy holding
// the current directory when name is empty.
func resolveWorkspace(svc *vcs.Service, workspaces map[string]config.WorkspaceEntry, name string) (merge.Workspace, *git.Repository, error) {
	var ws merge.Workspace

	if name == "" {
		current, err := svc.CurrentWorkspace()
		if err != nil {
			return ws, nil, errors.Wrap(err, "failed to detect workspace")
		}
		ws = current
	} else {
		ws = merge.Workspace{Owner: workspaces[name].Owner, Name: name}
	}

	repo, err := svc.Repository(ws)
	if err != nil {
		return ws, nil, err
	}

	return ws, repo, nil
}

// resolveBranches fills in branches the user did not pass from the saved
// defaults.
func resolveBranches(settings *config.Settings, repoRoot, source, target string) (config.BranchDefaults, error) {
	branches := config.LoadBranchDefaults(settings, repoRoot)
	if source != "" {
		branches.SourceBranch = source
	}
	if target != "" {
		branches.TargetBranch = target
	}

	if !branches.IsValid() {
		return branches, errors.New("source and target branch are required: pass --source and --target")
	}

	return branches, nil
}

// lockWorkspace holds the workspace lock until the returned func is called.
func lockWorkspace(ctx context.Context, root string) (func(), error) {
	if env.IsLockDisabled() {
		return func() {}, nil
	}

	logger := log.From(ctx)
	mutex := locks.WorkspaceLock(root, locks.DefaultOpts())

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	err := mutex.Lock(ctx, lockRetryDelay, func() {
		logger.Warnf("Waiting for another teammerge process to finish in %s", root)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to lock workspace %s", root)
	}

	return func() {
		if err := mutex.Unlock(); err != nil {
			logger.Warnf("failed to release workspace lock: %s", err.Error())
		}
	}, nil
}

func completeBranches(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return branchCompletions(wd, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// branchCompletions lists the local branches of the working copy holding dir
// that start with prefix.
func branchCompletions(dir, prefix string) []string {
	repo, err := git.NewLocalRepository(dir)
	if err != nil || repo.IsNil() {
		return nil
	}

	branches, err := repo.Branches()
	if err != nil {
		return nil
	}

	return lo.Filter(branches, func(b string, _ int) bool { return strings.HasPrefix(b, prefix) })
}
