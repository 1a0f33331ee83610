package git

import (
	"fmt"
	"sort"

	gitc "github.com/go-git/go-git/v5"
	"github.com/samber/lo"
)

// HasTrackedChanges reports whether any tracked file is modified, staged,
// added, deleted or renamed. Untracked files are ignored.
func (r *Repository) HasTrackedChanges() (bool, error) {
	if r.IsNil() {
		return false, ErrNotInitialized
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("git: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read worktree status: %w", err)
	}

	for _, s := range status {
		if s.Staging == gitc.Untracked && s.Worktree == gitc.Untracked {
			continue
		}
		if s.Staging != gitc.Unmodified || s.Worktree != gitc.Unmodified {
			return true, nil
		}
	}

	return false, nil
}

// ConflictedPaths lists the paths that still have unmerged (stage 1-3)
// entries in the index.
func (r *Repository) ConflictedPaths() ([]string, error) {
	if r.IsNil() {
		return nil, ErrNotInitialized
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var paths []string
	for _, e := range idx.Entries {
		if e.Stage != 0 {
			paths = append(paths, e.Name)
		}
	}

	paths = lo.Uniq(paths)
	sort.Strings(paths)

	return paths, nil
}
