package git

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// UpdateBranch moves refs/heads/<branch> to hash. If oldHash is not empty the
// update only happens while the branch still points at oldHash.
func (r *Repository) UpdateBranch(branch, newHash, oldHash string) error {
	if r.IsNil() {
		return ErrNotInitialized
	}

	name := plumbing.NewBranchReferenceName(branch)
	newRef := plumbing.NewHashReference(name, plumbing.NewHash(newHash))

	if oldHash == "" {
		return r.repo.Storer.SetReference(newRef)
	}

	return r.repo.Storer.CheckAndSetReference(newRef, plumbing.NewHashReference(name, plumbing.NewHash(oldHash)))
}

// ResolveRevision resolves a revision (like "HEAD", "branchname") to a hash.
func (r *Repository) ResolveRevision(revision string) (string, error) {
	if r.IsNil() {
		return "", ErrNotInitialized
	}

	h, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", err
	}
	return h.String(), nil
}
