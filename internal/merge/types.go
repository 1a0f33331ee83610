// Package merge runs the check-in workflow that merges a contiguous range of
// changesets from a source branch into a target branch and prepares the
// check-in comment and work item list for the resulting pending change.
package merge

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/samber/lo"
)

// Workspace identifies a local working copy.
type Workspace struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (w Workspace) String() string {
	if w.Owner == "" {
		return w.Name
	}
	return fmt.Sprintf("%s@%s", w.Owner, w.Name)
}

// Request describes one merge. OrderedChangesetIDs must be non-empty and
// ascending; its first and last elements bound the merged range.
type Request struct {
	Workspace           Workspace
	SourceBranch        string
	TargetBranch        string
	OrderedChangesetIDs []int
}

func (r Request) Validate() error {
	if len(r.OrderedChangesetIDs) == 0 {
		return fmt.Errorf("no changesets selected")
	}
	if strings.TrimSpace(r.SourceBranch) == "" || strings.TrimSpace(r.TargetBranch) == "" {
		return fmt.Errorf("source and target branch are required")
	}
	if r.SourceBranch == r.TargetBranch {
		return fmt.Errorf("source and target branch must differ")
	}

	return nil
}

// changesetRange returns the smallest and largest selected changeset id.
func (r Request) changesetRange() (int, int) {
	return lo.Min(r.OrderedChangesetIDs), lo.Max(r.OrderedChangesetIDs)
}

// BranchLatestSelection says which branches are brought up to date before
// merging.
type BranchLatestSelection int

const (
	BranchNone BranchLatestSelection = iota
	BranchSource
	BranchTarget
	BranchSourceAndTarget
)

var branchSelections = []BranchLatestSelection{BranchNone, BranchSource, BranchTarget, BranchSourceAndTarget}

func (b BranchLatestSelection) String() string {
	switch b {
	case BranchNone:
		return "none"
	case BranchSource:
		return "source"
	case BranchTarget:
		return "target"
	case BranchSourceAndTarget:
		return "source-and-target"
	}

	return fmt.Sprintf("BranchLatestSelection(%d)", int(b))
}

// Description is the human readable name used in progress messages.
func (b BranchLatestSelection) Description() string {
	return strings.ReplaceAll(b.String(), "-", " ")
}

func ParseBranchLatestSelection(s string) (BranchLatestSelection, error) {
	key := strcase.ToKebab(strings.TrimSpace(s))
	for _, b := range branchSelections {
		if b.String() == key {
			return b, nil
		}
	}

	return BranchNone, fmt.Errorf("unknown latest version branch %q (available options: [%s])", s, strings.Join(BranchLatestSelectionOptions(), ", "))
}

func BranchLatestSelectionOptions() []string {
	return lo.Map(branchSelections, func(b BranchLatestSelection, _ int) string { return b.String() })
}

// CheckInCommentMode selects the placeholders the comment template is
// filled with.
type CheckInCommentMode int

const (
	CommentNone CheckInCommentMode = iota
	CommentFixed
	CommentMergeDirection
	CommentWorkItemIDs
	CommentChangesetIDs
	CommentMergeDirectionAndWorkItems
	CommentMergeDirectionAndChangesetIDs
)

var commentModes = []CheckInCommentMode{
	CommentNone,
	CommentFixed,
	CommentMergeDirection,
	CommentWorkItemIDs,
	CommentChangesetIDs,
	CommentMergeDirectionAndWorkItems,
	CommentMergeDirectionAndChangesetIDs,
}

func (m CheckInCommentMode) String() string {
	switch m {
	case CommentNone:
		return "none"
	case CommentFixed:
		return "fixed"
	case CommentMergeDirection:
		return "merge-direction"
	case CommentWorkItemIDs:
		return "work-item-ids"
	case CommentChangesetIDs:
		return "changeset-ids"
	case CommentMergeDirectionAndWorkItems:
		return "merge-direction-and-work-items"
	case CommentMergeDirectionAndChangesetIDs:
		return "merge-direction-and-changeset-ids"
	}

	return fmt.Sprintf("CheckInCommentMode(%d)", int(m))
}

// ParseCheckInCommentMode accepts the kebab-case names as well as their
// camel-case spellings (MergeDirectionAndWorkItems).
func ParseCheckInCommentMode(s string) (CheckInCommentMode, error) {
	key := strcase.ToKebab(strings.TrimSpace(s))
	for _, m := range commentModes {
		if m.String() == key {
			return m, nil
		}
	}

	return CommentNone, fmt.Errorf("unknown check-in comment mode %q (available options: [%s])", s, strings.Join(CheckInCommentModeOptions(), ", "))
}

func CheckInCommentModeOptions() []string {
	return lo.Map(commentModes, func(m CheckInCommentMode, _ int) string { return m.String() })
}
