package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/model"
	"github.com/teammerge/teammerge/internal/model/flag"
	"github.com/teammerge/teammerge/internal/vcs"
)

type changesetsFlags struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Workspace string `json:"workspace"`
	JSON      bool   `json:"json"`
}

var changesetsCmd = &model.ExecutableCommand[changesetsFlags]{
	Usage: "changesets",
	Short: "List the changesets of the source branch that are not in the target branch",
	Run:   runChangesets,
	Flags: []flag.Flag{
		sourceFlag,
		targetFlag,
		workspaceFlag,
		flag.BooleanFlag{
			Name:        "json",
			Description: "print the changesets as JSON",
		},
	},
}

type changesetRow struct {
	ID        int
	Age       string
	Author    string
	Comment   string
	WorkItems string
}

func runChangesets(ctx context.Context, flags changesetsFlags) error {
	settings := config.Current()

	svc, workspaces, err := newVersionControl(settings)
	if err != nil {
		return err
	}

	ws, repo, err := resolveWorkspace(svc, workspaces, flags.Workspace)
	if err != nil {
		return err
	}

	branches, err := resolveBranches(settings, repo.Root(), flags.Source, flags.Target)
	if err != nil {
		return err
	}

	pending, err := svc.PendingChangesets(ctx, ws, branches.SourceBranch, branches.TargetBranch)
	if err != nil {
		return err
	}

	if flags.JSON {
		return log.PrintArray(ctx, pending, true, nil)
	}

	rows := lo.Map(pending, func(c vcs.Changeset, _ int) changesetRow {
		return changesetRow{
			ID:        c.ID,
			Age:       humanize.Time(c.When),
			Author:    c.Author,
			Comment:   c.Comment,
			WorkItems: vcs.FormatWorkItemReferences(c.WorkItemIDs),
		}
	})

	return log.PrintArray(ctx, rows, false, map[string]string{"WorkItems": "Work items"})
}
