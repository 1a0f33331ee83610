package git

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is one entry on a branch's first-parent chain. Depth counts from
// the root commit, which has depth 1.
type Commit struct {
	Hash    string
	Depth   int
	Author  string
	When    time.Time
	Message string
}

// Subject is the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return subject
}

// FirstParentHistory walks branch from its tip along first parents and
// returns the commits oldest first.
func (r *Repository) FirstParentHistory(branch string) ([]Commit, error) {
	if r.IsNil() {
		return nil, ErrNotInitialized
	}

	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("branch %s not found: %w", branch, err)
	}

	var chain []*object.Commit

	hash := ref.Hash()
	for {
		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
		}
		chain = append(chain, c)

		if len(c.ParentHashes) == 0 {
			break
		}
		hash = c.ParentHashes[0]
	}

	history := make([]Commit, len(chain))
	for i := range chain {
		c := chain[len(chain)-1-i]
		history[i] = Commit{
			Hash:    c.Hash.String(),
			Depth:   i + 1,
			Author:  c.Author.Name,
			When:    c.Author.When,
			Message: c.Message,
		}
	}

	return history, nil
}

// IsAncestor reports whether commit a is reachable from commit b.
func (r *Repository) IsAncestor(a, b string) (bool, error) {
	if r.IsNil() {
		return false, ErrNotInitialized
	}

	ca, err := r.repo.CommitObject(plumbing.NewHash(a))
	if err != nil {
		return false, fmt.Errorf("failed to read commit %s: %w", a, err)
	}
	cb, err := r.repo.CommitObject(plumbing.NewHash(b))
	if err != nil {
		return false, fmt.Errorf("failed to read commit %s: %w", b, err)
	}

	return ca.IsAncestor(cb)
}
