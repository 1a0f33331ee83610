package git

import (
	"errors"
	"fmt"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

type Repository struct {
	repo *gitc.Repository
	root string
}

var ErrNotInitialized = errors.New("git repository not initialized")

// NewLocalRepository will attempt to open a pre-existing git repository in the given directory
// or one of its parents. If no repository is found, it will return an empty Repository
func NewLocalRepository(dir string) (*Repository, error) {
	repo, err := gitc.PlainOpenWithOptions(dir, &gitc.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, gitc.ErrRepositoryNotExists) {
		return &Repository{}, nil
	} else if err != nil {
		return &Repository{}, fmt.Errorf("git: %w", err)
	}

	r := &Repository{repo: repo}
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}

	return r, nil
}

func (r *Repository) IsNil() bool {
	return r.repo == nil
}

// Root is the top level directory of the working tree.
func (r *Repository) Root() string {
	return r.root
}

// HeadBranch returns the short name of the checked out branch, or an empty
// string when HEAD is detached.
func (r *Repository) HeadBranch() (string, error) {
	if r.IsNil() {
		return "", nil
	}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("git: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", nil
	}

	return head.Name().Short(), nil
}

func (r *Repository) BranchExists(branch string) bool {
	if r.IsNil() {
		return false
	}

	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}

// Branches lists the local branch names.
func (r *Repository) Branches() ([]string, error) {
	if r.IsNil() {
		return nil, ErrNotInitialized
	}

	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("git: %w", err)
	}

	var branches []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, ref.Name().Short())
		return nil
	})

	return branches, err
}
