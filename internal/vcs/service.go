// Package vcs implements the version-control side of a merge on top of a
// local git working copy.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/git"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/merge"
	"github.com/teammerge/teammerge/internal/utils"
	"go.uber.org/zap"
)

type Options struct {
	// Workspaces maps workspace names to working copies.
	Workspaces map[string]config.WorkspaceEntry
	// WorkItemCatalog is resolved against the repository root when relative.
	WorkItemCatalog string
	// AccessToken is sent as HTTPS basic auth when fetching.
	AccessToken string
	// WorkingDir is where unconfigured workspaces are looked up. Defaults to
	// the process working directory.
	WorkingDir string
}

// Service implements merge.VersionControl for git working copies.
type Service struct {
	opts Options

	mergetool func(ctx context.Context, dir string) error

	mu        sync.Mutex
	lastMerge map[merge.Workspace][]git.Commit
}

var _ merge.VersionControl = (*Service)(nil)

func NewService(opts Options) *Service {
	return &Service{
		opts:      opts,
		mergetool: runMergetool,
		lastMerge: map[merge.Workspace][]git.Commit{},
	}
}

func runMergetool(ctx context.Context, dir string) error {
	return git.RunGitCommandInteractive(ctx, dir, "mergetool")
}

// CurrentWorkspace describes the working copy containing the working
// directory.
func (s *Service) CurrentWorkspace() (merge.Workspace, error) {
	repo, err := s.openDir(s.workingDir())
	if err != nil {
		return merge.Workspace{}, err
	}

	return merge.Workspace{Owner: currentUser(), Name: filepath.Base(repo.Root())}, nil
}

// Repository opens the working copy behind ws.
func (s *Service) Repository(ws merge.Workspace) (*git.Repository, error) {
	if entry, ok := s.opts.Workspaces[ws.Name]; ok {
		if entry.Owner != "" && ws.Owner != "" && entry.Owner != ws.Owner {
			return nil, fmt.Errorf("workspace %s belongs to %s, not %s", ws.Name, entry.Owner, ws.Owner)
		}
		return s.openDir(entry.Path)
	}

	repo, err := s.openDir(s.workingDir())
	if err != nil {
		return nil, err
	}
	if ws.Name != "" && ws.Name != filepath.Base(repo.Root()) {
		return nil, fmt.Errorf("unknown workspace %s, add it with `teammerge configure workspace`", ws.Name)
	}

	return repo, nil
}

func (s *Service) openDir(dir string) (*git.Repository, error) {
	repo, err := git.NewLocalRepository(dir)
	if err != nil {
		return nil, err
	}
	if repo.IsNil() {
		return nil, fmt.Errorf("%s is not inside a git repository", dir)
	}

	return repo, nil
}

func (s *Service) workingDir() string {
	if s.opts.WorkingDir != "" {
		return s.opts.WorkingDir
	}
	wd, _ := os.Getwd()
	return wd
}

func (s *Service) HasIncludedPendingChanges(_ context.Context, ws merge.Workspace) (bool, error) {
	repo, err := s.Repository(ws)
	if err != nil {
		return false, err
	}

	return repo.HasTrackedChanges()
}

// GetLatestVersion brings each branch up to date with origin. The checked
// out branch is merged natively so conflicts are left in the index; other
// branches are only fast-forwarded. Without an origin remote this is a no-op.
func (s *Service) GetLatestVersion(ctx context.Context, ws merge.Workspace, branches ...string) error {
	logger := log.From(ctx).With(zap.String("workspace", ws.String()))

	repo, err := s.Repository(ws)
	if err != nil {
		return err
	}

	if !repo.HasRemote(git.DefaultRemote) {
		logger.Warnf("No %s remote configured, using local branches as they are", git.DefaultRemote)
		return nil
	}

	if err := repo.Fetch(ctx, git.DefaultRemote, s.opts.AccessToken, branches...); err != nil {
		return err
	}

	head, err := repo.HeadBranch()
	if err != nil {
		return err
	}

	for _, branch := range branches {
		remoteHash, err := repo.RemoteBranchHash(git.DefaultRemote, branch)
		if err != nil {
			return err
		}
		if remoteHash == "" {
			logger.Warnf("Branch %s does not exist on %s", branch, git.DefaultRemote)
			continue
		}

		if branch == head {
			if err := s.mergeRemote(ctx, repo, branch); err != nil {
				return err
			}
			continue
		}

		if err := fastForward(repo, branch, remoteHash, logger); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) mergeRemote(ctx context.Context, repo *git.Repository, branch string) error {
	_, err := repo.RunGitCommandInRepo(ctx, "merge", "--no-edit", git.DefaultRemote+"/"+branch)
	if err == nil {
		return nil
	}

	// a conflicting merge is a result, not a failure
	conflicts, cerr := repo.ConflictedPaths()
	if cerr == nil && len(conflicts) > 0 {
		return nil
	}

	return err
}

func fastForward(repo *git.Repository, branch, remoteHash string, logger log.Logger) error {
	if !repo.BranchExists(branch) {
		return repo.UpdateBranch(branch, remoteHash, "")
	}

	localHash, err := repo.ResolveRevision(branch)
	if err != nil {
		return err
	}
	if localHash == remoteHash {
		return nil
	}

	ok, err := repo.IsAncestor(localHash, remoteHash)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warnf("Branch %s has diverged from %s/%s, leaving it untouched", branch, git.DefaultRemote, branch)
		return nil
	}

	return repo.UpdateBranch(branch, remoteHash, localHash)
}

// ResolveConflicts hands the unmerged paths to `git mergetool`. Whether the
// user finished is judged by a following HasConflicts call, so a mergetool
// that exits non-zero is not an error here.
func (s *Service) ResolveConflicts(ctx context.Context, ws merge.Workspace) error {
	repo, err := s.Repository(ws)
	if err != nil {
		return err
	}

	paths, err := repo.ConflictedPaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	log.From(ctx).Infof("Resolving %d conflicted files", len(paths))

	err = s.mergetool(ctx, repo.Root())

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.From(ctx).Warn("mergetool did not finish", zap.Error(err))
		return nil
	}

	return err
}

func (s *Service) HasConflicts(_ context.Context, ws merge.Workspace) (bool, error) {
	repo, err := s.Repository(ws)
	if err != nil {
		return false, err
	}

	paths, err := repo.ConflictedPaths()
	if err != nil {
		return false, err
	}

	return len(paths) > 0, nil
}

// MergeBranches applies the source changesets minChangeset..maxChangeset to
// target without committing them. Changesets in the range whose patch is
// already in target are skipped.
func (s *Service) MergeBranches(ctx context.Context, ws merge.Workspace, source, target string, minChangeset, maxChangeset int) error {
	repo, err := s.Repository(ws)
	if err != nil {
		return err
	}

	if err := git.RequireNativeVersion(ctx); err != nil {
		return err
	}

	history, err := repo.FirstParentHistory(source)
	if err != nil {
		return err
	}

	selected := lo.Filter(history, func(c git.Commit, _ int) bool {
		return c.Depth >= minChangeset && c.Depth <= maxChangeset
	})
	if len(selected) == 0 {
		return fmt.Errorf("no changesets %d-%d on branch %s", minChangeset, maxChangeset, source)
	}

	unapplied, err := unappliedCommits(ctx, repo, source, target)
	if err != nil {
		return err
	}
	selected = lo.Filter(selected, func(c git.Commit, _ int) bool { return unapplied[c.Hash] })
	if len(selected) == 0 {
		return fmt.Errorf("changesets %d-%d of branch %s are already in %s", minChangeset, maxChangeset, source, target)
	}

	head, err := repo.HeadBranch()
	if err != nil {
		return err
	}
	if head != target {
		if _, err := repo.RunGitCommandInRepo(ctx, "checkout", target); err != nil {
			return err
		}
	}

	args := append([]string{"cherry-pick", "--no-commit", "-m", "1"}, lo.Map(selected, func(c git.Commit, _ int) string { return c.Hash })...)
	if _, err := repo.RunGitCommandInRepo(ctx, args...); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastMerge[ws] = history
	s.mu.Unlock()

	return nil
}

// GetWorkItemIDs collects the work items referenced by the given changesets
// of the source branch of the last merge in ws.
func (s *Service) GetWorkItemIDs(ctx context.Context, ws merge.Workspace, changesetIDs []int, excludedTypes []string) ([]int, error) {
	s.mu.Lock()
	history, ok := s.lastMerge[ws]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no merge has been run in workspace %s", ws)
	}

	repo, err := s.Repository(ws)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog(repo)
	if err != nil {
		return nil, err
	}

	byDepth := lo.KeyBy(history, func(c git.Commit) int { return c.Depth })

	ids := []int{}
	for _, id := range changesetIDs {
		c, ok := byDepth[id]
		if !ok {
			return nil, fmt.Errorf("changeset %d not found", id)
		}
		ids = append(ids, ParseWorkItemReferences(c.Message)...)
	}

	ids = catalog.Filter(lo.Uniq(ids), excludedTypes)

	log.From(ctx).Infof("Found %d work items", len(ids))

	return ids, nil
}

func (s *Service) catalog(repo *git.Repository) (*Catalog, error) {
	path := s.opts.WorkItemCatalog
	if path == "" {
		return &Catalog{}, nil
	}
	if strings.HasPrefix(path, "~/") {
		path = utils.ExpandPath(path)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(repo.Root(), path)
	}

	return LoadCatalog(path)
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
