package merge

import (
	"context"

	"github.com/teammerge/teammerge/internal/config"
)

// Settings is the read side of the user's configuration.
type Settings interface {
	GetBool(key config.Key) bool
	GetString(key config.Key) string
	GetStringSlice(key config.Key) []string
}

// VersionControl is the set of version-control primitives the operation
// drives. Implementations must not retry on their own.
type VersionControl interface {
	// HasIncludedPendingChanges reports edits to tracked files; files that
	// are not under source control do not count.
	HasIncludedPendingChanges(ctx context.Context, ws Workspace) (bool, error)
	GetLatestVersion(ctx context.Context, ws Workspace, branches ...string) error
	ResolveConflicts(ctx context.Context, ws Workspace) error
	HasConflicts(ctx context.Context, ws Workspace) (bool, error)
	MergeBranches(ctx context.Context, ws Workspace, source, target string, minChangeset, maxChangeset int) error
	GetWorkItemIDs(ctx context.Context, ws Workspace, changesetIDs []int, excludedTypes []string) ([]int, error)
}

// Notifier receives the outcome of a successful merge.
type Notifier interface {
	Notify(ctx context.Context, ws Workspace, comment string, workItemIDs []int) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ws Workspace, comment string, workItemIDs []int) error

func (f NotifierFunc) Notify(ctx context.Context, ws Workspace, comment string, workItemIDs []int) error {
	return f(ctx, ws, comment, workItemIDs)
}
