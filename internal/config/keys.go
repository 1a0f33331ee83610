package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Key names a setting in config.yaml. Environment overrides use the
// TEAMMERGE_ prefix with dashes replaced by underscores.
type Key string

const (
	WarnOnPendingChanges       Key = "warn-on-pending-changes"
	LatestVersionBranch        Key = "latest-version-branch"
	ResolveConflicts           Key = "resolve-conflicts"
	ShowLatestVersionInComment Key = "show-latest-version-in-comment"
	CheckInCommentMode         Key = "check-in-comment-mode"
	CommentTemplate            Key = "comment-template"
	ExcludeWorkItemsForMerge   Key = "exclude-work-items-for-merge"
	WorkItemTypesToExclude     Key = "work-item-types-to-exclude"
	AutoSelectAllChangesets    Key = "auto-select-all-changesets"
	SaveBranchPerRepository    Key = "save-branch-per-repository"
	SourceBranch               Key = "source-branch"
	TargetBranch               Key = "target-branch"
	WorkItemCatalog            Key = "work-item-catalog"
	Workspaces                 Key = "workspaces"
)

const (
	defaultCommentTemplate      = "Merge {0} --> {1}"
	defaultWorkItemCatalog      = ".teammerge/workitems.yaml"
	defaultExcludedWorkItemType = "Code Review Request"
)

// Keys lists every setting that can be edited with `teammerge configure set`.
var Keys = []Key{
	WarnOnPendingChanges,
	LatestVersionBranch,
	ResolveConflicts,
	ShowLatestVersionInComment,
	CheckInCommentMode,
	CommentTemplate,
	ExcludeWorkItemsForMerge,
	WorkItemTypesToExclude,
	AutoSelectAllChangesets,
	SaveBranchPerRepository,
	SourceBranch,
	TargetBranch,
	WorkItemCatalog,
}

func (k Key) String() string {
	return string(k)
}

func defaults() map[Key]any {
	return map[Key]any{
		WarnOnPendingChanges:       true,
		LatestVersionBranch:        "none",
		ResolveConflicts:           false,
		ShowLatestVersionInComment: false,
		CheckInCommentMode:         "merge-direction",
		CommentTemplate:            defaultCommentTemplate,
		ExcludeWorkItemsForMerge:   false,
		WorkItemTypesToExclude:     []string{defaultExcludedWorkItemType},
		AutoSelectAllChangesets:    false,
		SaveBranchPerRepository:    false,
		WorkItemCatalog:            defaultWorkItemCatalog,
	}
}

// ParseKey accepts a key name as written in config.yaml.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown setting %q", s)
}

// ParseValue converts raw command line input to the type key is stored as.
// List values are comma separated.
func ParseValue(key Key, raw string) (any, error) {
	switch defaults()[key].(type) {
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false: %w", key, err)
		}
		return b, nil
	case []string:
		return splitList(raw), nil
	default:
		return raw, nil
	}
}

// splitList splits a comma-separated list, trimming each item and dropping
// empty ones.
func splitList(raw string) []string {
	values := []string{}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return values
}
