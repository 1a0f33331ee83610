package merge

import (
	"context"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/log"
	"go.uber.org/zap"
)

const idSeparator = ", "

// CommentFacts are the merge details a check-in comment can mention.
type CommentFacts struct {
	SourceBranch      string
	TargetBranch      string
	WorkItemIDs       []int
	ChangesetIDs      []int
	ShowLatestVersion bool
}

// Synthesize builds the check-in comment using the configured mode and
// template. An unknown mode is treated as CommentNone.
func Synthesize(ctx context.Context, settings Settings, facts CommentFacts) string {
	mode, err := ParseCheckInCommentMode(settings.GetString(config.CheckInCommentMode))
	if err != nil {
		log.From(ctx).Warn("ignoring check-in comment", zap.Error(err))
		return ""
	}

	return FormatComment(mode, settings.GetString(config.CommentTemplate), facts)
}

// FormatComment fills template for mode.
func FormatComment(mode CheckInCommentMode, template string, facts CommentFacts) string {
	switch mode {
	case CommentNone:
		return ""
	case CommentFixed:
		return template
	case CommentMergeDirection:
		return formatTemplate(template, facts.SourceBranch, facts.TargetBranch)
	case CommentWorkItemIDs:
		return formatTemplate(template, workItemsSegment(facts))
	case CommentChangesetIDs:
		return formatTemplate(template, joinIDs(facts.ChangesetIDs))
	case CommentMergeDirectionAndWorkItems:
		return formatTemplate(template, facts.SourceBranch, facts.TargetBranch, workItemsSegment(facts))
	case CommentMergeDirectionAndChangesetIDs:
		return formatTemplate(template, facts.SourceBranch, facts.TargetBranch, joinIDs(facts.ChangesetIDs))
	}

	return ""
}

func workItemsSegment(facts CommentFacts) string {
	if facts.ShowLatestVersion {
		return LatestVersionMarker
	}
	return joinIDs(facts.WorkItemIDs)
}

func joinIDs(ids []int) string {
	return strings.Join(lo.Map(ids, func(id int, _ int) string { return strconv.Itoa(id) }), idSeparator)
}

// formatTemplate substitutes positional placeholders ({0}, {1}, ...) and
// unescapes doubled braces. Placeholders without a matching argument are
// left as written.
func formatTemplate(template string, args ...string) string {
	oldnew := []string{"{{", "{", "}}", "}"}
	for i, arg := range args {
		oldnew = append(oldnew, "{"+strconv.Itoa(i)+"}", arg)
	}

	return strings.NewReplacer(oldnew...).Replace(template)
}
