package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/merge"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *gitc.Repository
}

// newTestRepo creates a repository with one commit on "main".
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gitc.PlainInitWithOptions(dir, &gitc.PlainInitOptions{
		InitOptions: gitc.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	require.NoError(t, err)

	r := &testRepo{t: t, dir: dir, repo: repo}
	r.commit("README.md", "# test", "initial commit")

	return r
}

func (r *testRepo) commit(name, content, message string) string {
	r.t.Helper()

	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, name), []byte(content), 0o644))

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	_, err = wt.Add(name)
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &gitc.CommitOptions{
		Author: &object.Signature{
			Name:  "dev",
			Email: "dev@example.com",
			When:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(r.t, err)

	return hash.String()
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	require.NoError(r.t, wt.Checkout(&gitc.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}))
}

func (r *testRepo) workspace() merge.Workspace {
	return merge.Workspace{Owner: "dev", Name: "app"}
}

func (r *testRepo) service(catalog string) *Service {
	return NewService(Options{
		Workspaces: map[string]config.WorkspaceEntry{
			"app": {Owner: "dev", Path: r.dir},
		},
		WorkItemCatalog: catalog,
	})
}

// withFeatureBranch adds three commits on "feature" (changesets 2, 3 and 4)
// and leaves "main" checked out.
func (r *testRepo) withFeatureBranch() {
	r.t.Helper()

	r.checkout("feature", true)
	r.commit("one.txt", "1", "first feature change\n\nAB#10 AB#11")
	r.commit("two.txt", "2", "second feature change AB#11")
	r.commit("three.txt", "3", "third feature change AB#12")
	r.checkout("main", false)
}

func requireNativeGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// git runs the git binary in the repository.
func (r *testRepo) git(args ...string) {
	r.t.Helper()

	args = append([]string{"-c", "user.name=dev", "-c", "user.email=dev@example.com"}, args...)
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	out, err := cmd.CombinedOutput()
	require.NoError(r.t, err, string(out))
}

// conflict leaves README.md unmerged on main.
func (r *testRepo) conflict() {
	r.t.Helper()

	r.checkout("side", true)
	r.commit("README.md", "side", "side change")
	r.checkout("main", false)
	r.commit("README.md", "main", "main change")

	cmd := exec.Command("git", "cherry-pick", "--no-commit", "side")
	cmd.Dir = r.dir
	require.Error(r.t, cmd.Run(), "cherry-pick must conflict")
}
