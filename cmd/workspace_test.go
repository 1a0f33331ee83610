package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGitRepo creates a repository with one commit on "main".
func newGitRepo(t *testing.T) (string, *gitc.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gitc.PlainInitWithOptions(dir, &gitc.PlainInitOptions{
		InitOptions: gitc.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)

	commitFile(t, repo, dir, "README.md", "# test")

	return dir, repo
}

func commitFile(t *testing.T, repo *gitc.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("update "+name, &gitc.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return hash
}

func TestBranchCompletions(t *testing.T) {
	dir, repo := newGitRepo(t)

	head, err := repo.Head()
	require.NoError(t, err)
	for _, b := range []string{"feature/login", "feature/search", "release"} {
		require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName(b), head.Hash())))
	}

	assert.ElementsMatch(t, []string{"main", "feature/login", "feature/search", "release"}, branchCompletions(dir, ""))
	assert.ElementsMatch(t, []string{"feature/login", "feature/search"}, branchCompletions(dir, "feat"))
	assert.Empty(t, branchCompletions(t.TempDir(), ""))
}
