package merge

import (
	"context"
	"fmt"
	"strings"

	"github.com/teammerge/teammerge/internal/config"
)

type fakeSettings map[config.Key]any

func (s fakeSettings) GetBool(key config.Key) bool {
	v, _ := s[key].(bool)
	return v
}

func (s fakeSettings) GetString(key config.Key) string {
	v, _ := s[key].(string)
	return v
}

func (s fakeSettings) GetStringSlice(key config.Key) []string {
	v, _ := s[key].([]string)
	return v
}

// fakeVCS records every call as a readable string so tests can assert the
// exact sequence the operation drove.
type fakeVCS struct {
	calls []string

	pendingChanges bool
	// conflicts is consumed front to back by HasConflicts; the last value repeats.
	conflicts   []bool
	workItemIDs []int

	pendingErr error
	latestErr  error
	resolveErr error
	mergeErr   error
	itemsErr   error

	latestBranches []string
	mergeRange     [2]int
	itemsQuery     []int
	excludedTypes  []string
}

func (f *fakeVCS) record(format string, a ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, a...))
}

func (f *fakeVCS) HasIncludedPendingChanges(_ context.Context, ws Workspace) (bool, error) {
	f.record("pending(%s)", ws)
	return f.pendingChanges, f.pendingErr
}

func (f *fakeVCS) GetLatestVersion(_ context.Context, ws Workspace, branches ...string) error {
	f.record("latest(%s, %s)", ws, strings.Join(branches, ", "))
	f.latestBranches = branches
	return f.latestErr
}

func (f *fakeVCS) ResolveConflicts(_ context.Context, ws Workspace) error {
	f.record("resolve(%s)", ws)
	return f.resolveErr
}

func (f *fakeVCS) HasConflicts(_ context.Context, ws Workspace) (bool, error) {
	f.record("conflicts(%s)", ws)
	if len(f.conflicts) == 0 {
		return false, nil
	}
	c := f.conflicts[0]
	if len(f.conflicts) > 1 {
		f.conflicts = f.conflicts[1:]
	}
	return c, nil
}

func (f *fakeVCS) MergeBranches(_ context.Context, ws Workspace, source, target string, minChangeset, maxChangeset int) error {
	f.record("merge(%s, %s, %s, %d, %d)", ws, source, target, minChangeset, maxChangeset)
	f.mergeRange = [2]int{minChangeset, maxChangeset}
	return f.mergeErr
}

func (f *fakeVCS) GetWorkItemIDs(_ context.Context, ws Workspace, changesetIDs []int, excludedTypes []string) ([]int, error) {
	f.record("workitems(%s)", ws)
	f.itemsQuery = changesetIDs
	f.excludedTypes = excludedTypes
	return f.workItemIDs, f.itemsErr
}

func (f *fakeVCS) called(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

type notification struct {
	ws          Workspace
	comment     string
	workItemIDs []int
}

type fakeNotifier struct {
	notifications []notification
	err           error
}

func (n *fakeNotifier) Notify(_ context.Context, ws Workspace, comment string, workItemIDs []int) error {
	n.notifications = append(n.notifications, notification{ws: ws, comment: comment, workItemIDs: workItemIDs})
	return n.err
}

type recordedProgress struct {
	actions []string
	cleared int
}

func (p *recordedProgress) Report(action string) {
	p.actions = append(p.actions, action)
}

func (p *recordedProgress) Clear() {
	p.cleared++
}
