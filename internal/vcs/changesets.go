package vcs

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/teammerge/teammerge/internal/git"
	"github.com/teammerge/teammerge/internal/merge"
)

// Changeset is a source branch commit that has not been applied to the
// target branch yet.
type Changeset struct {
	ID          int       `json:"id"`
	Hash        string    `json:"hash"`
	Author      string    `json:"author"`
	When        time.Time `json:"when"`
	Comment     string    `json:"comment"`
	WorkItemIDs []int     `json:"workItemIds"`
}

// PendingChangesets lists the first-parent commits of source whose changes
// are not in target, oldest first. Commits already cherry-picked into target
// are recognised by patch id and left out.
func (s *Service) PendingChangesets(ctx context.Context, ws merge.Workspace, source, target string) ([]Changeset, error) {
	repo, err := s.Repository(ws)
	if err != nil {
		return nil, err
	}

	for _, b := range []string{source, target} {
		if !repo.BranchExists(b) {
			return nil, branchNotFound(repo, b)
		}
	}

	history, err := repo.FirstParentHistory(source)
	if err != nil {
		return nil, err
	}

	unapplied, err := unappliedCommits(ctx, repo, source, target)
	if err != nil {
		return nil, err
	}

	var pending []Changeset
	for _, c := range history {
		if !unapplied[c.Hash] {
			continue
		}
		pending = append(pending, Changeset{
			ID:          c.Depth,
			Hash:        c.Hash,
			Author:      c.Author,
			When:        c.When,
			Comment:     c.Subject(),
			WorkItemIDs: ParseWorkItemReferences(c.Message),
		})
	}

	return pending, nil
}

func branchNotFound(repo *git.Repository, branch string) error {
	branches, err := repo.Branches()
	if err != nil || len(branches) == 0 {
		return fmt.Errorf("branch %s not found", branch)
	}

	slices.Sort(branches)
	return fmt.Errorf("branch %s not found (available: %s)", branch, strings.Join(branches, ", "))
}

// unappliedCommits returns the commits of source whose patch is not in target.
func unappliedCommits(ctx context.Context, repo *git.Repository, source, target string) (map[string]bool, error) {
	out, err := repo.RunGitCommandInRepo(ctx, "cherry", target, source)
	if err != nil {
		return nil, err
	}

	return parseCherry(out), nil
}

// parseCherry returns the commits `git cherry` marks with "+".
func parseCherry(out string) map[string]bool {
	unapplied := map[string]bool{}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		sign, hash, ok := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		if ok && sign == "+" {
			unapplied[strings.TrimSpace(hash)] = true
		}
	}

	return unapplied
}

// SelectChangesets checks that ids name a contiguous run of pending
// changesets and returns them in ascending order. Merging a range with a
// gap would also bring in the changesets the user left out.
func SelectChangesets(pending []Changeset, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no changesets selected")
	}

	selected := lo.Uniq(ids)
	slices.Sort(selected)

	positions := make([]int, 0, len(selected))
	for _, id := range selected {
		i := slices.IndexFunc(pending, func(c Changeset) bool { return c.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("changeset %d is not pending", id)
		}
		positions = append(positions, i)
	}

	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			return nil, fmt.Errorf("changesets must be contiguous: %d and %d have pending changesets between them", selected[i-1], selected[i])
		}
	}

	return selected, nil
}

// AllChangesetIDs returns the ids of every pending changeset.
func AllChangesetIDs(pending []Changeset) []int {
	return lo.Map(pending, func(c Changeset, _ int) int { return c.ID })
}
