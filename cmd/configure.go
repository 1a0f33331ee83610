package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/teammerge/teammerge/internal/charm/styles"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/git"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/merge"
	"github.com/teammerge/teammerge/internal/model"
	"github.com/teammerge/teammerge/internal/model/flag"
	"github.com/teammerge/teammerge/internal/utils"
)

var configureCmd = &model.CommandGroup{
	Usage:    "configure",
	Short:    "View and change teammerge settings",
	Long:     "View and change the settings stored in ~/.teammerge/config.yaml. Every setting can also be overridden with a TEAMMERGE_ environment variable, e.g. TEAMMERGE_RESOLVE_CONFLICTS=true.",
	Commands: []model.Command{configureShowCmd, configureSetCmd, configureWorkspaceCmd},
}

type configureShowFlags struct {
	JSON bool `json:"json"`
}

var configureShowCmd = &model.ExecutableCommand[configureShowFlags]{
	Usage: "show",
	Short: "Print the effective settings",
	Run:   runConfigureShow,
	Flags: []flag.Flag{
		flag.BooleanFlag{
			Name:        "json",
			Description: "print the settings as JSON",
		},
	},
}

type settingsView struct {
	File       string                           `json:"file"`
	Settings   map[string]any                   `json:"settings"`
	Workspaces map[string]config.WorkspaceEntry `json:"workspaces"`
}

func runConfigureShow(ctx context.Context, flags configureShowFlags) error {
	settings := config.Current()

	workspaces, err := settings.Workspaces()
	if err != nil {
		return err
	}

	view := settingsView{
		File:       filepath.Join(config.Dir(), "config.yaml"),
		Settings:   settings.AllSettings(),
		Workspaces: workspaces,
	}

	if flags.JSON {
		return log.PrintValue(ctx, view, true, nil)
	}

	logger := log.From(ctx)
	logger.PrintfStyled(styles.DimmedItalic, "%s", view.File)
	for _, key := range config.Keys {
		logger.Printf("%s: %v", key, view.Settings[key.String()])
	}

	if len(workspaces) == 0 {
		return nil
	}

	logger.Println("")
	logger.PrintfStyled(styles.HeavilyEmphasized, "Workspaces")
	names := lo.Keys(workspaces)
	slices.Sort(names)
	for _, name := range names {
		w := workspaces[name]
		logger.Printf("%s: %s (owner: %s)", name, w.Path, lo.Ternary(w.Owner == "", "any", w.Owner))
	}

	return nil
}

type configureSetFlags struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

var configureSetCmd = &model.ExecutableCommand[configureSetFlags]{
	Usage: "set",
	Short: "Change a setting",
	Long:  "Change a setting. List settings take a comma-separated value, e.g. --key work-item-types-to-exclude --value \"Code Review Request,Task\".",
	Run:   runConfigureSet,
	Flags: []flag.Flag{
		flag.EnumFlag{
			Name:          "key",
			Shorthand:     "k",
			Description:   "the setting to change",
			Required:      true,
			AllowedValues: lo.Map(config.Keys, func(k config.Key, _ int) string { return k.String() }),
		},
		flag.StringFlag{
			Name:        "value",
			Shorthand:   "v",
			Description: "the new value",
			Required:    true,
		},
	},
}

func runConfigureSet(ctx context.Context, flags configureSetFlags) error {
	key, err := config.ParseKey(flags.Key)
	if err != nil {
		return err
	}

	value, err := parseSettingValue(key, flags.Value)
	if err != nil {
		return err
	}

	if err := config.SetValue(key, value); err != nil {
		return err
	}

	log.From(ctx).Successf("%s set to %v", key, value)

	return nil
}

// parseSettingValue converts raw to the stored type and normalizes the
// enumerated settings to their canonical names.
func parseSettingValue(key config.Key, raw string) (any, error) {
	switch key {
	case config.LatestVersionBranch:
		b, err := merge.ParseBranchLatestSelection(raw)
		if err != nil {
			return nil, err
		}
		return b.String(), nil
	case config.CheckInCommentMode:
		m, err := merge.ParseCheckInCommentMode(raw)
		if err != nil {
			return nil, err
		}
		return m.String(), nil
	}

	return config.ParseValue(key, raw)
}

type configureWorkspaceFlags struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Owner string `json:"owner"`
}

var configureWorkspaceCmd = &model.ExecutableCommand[configureWorkspaceFlags]{
	Usage: "workspace",
	Short: "Register a working copy as a named workspace",
	Run:   runConfigureWorkspace,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "name",
			Shorthand:   "n",
			Description: "the workspace name used with --workspace",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "path",
			Shorthand:   "p",
			Description: "path inside the working copy (defaults to the current directory)",
		},
		flag.StringFlag{
			Name:        "owner",
			Shorthand:   "o",
			Description: "the user the workspace belongs to; merges requested by other users are refused",
		},
	},
}

func runConfigureWorkspace(ctx context.Context, flags configureWorkspaceFlags) error {
	path := flags.Path
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = wd
	}

	path = utils.ExpandPath(path)

	repo, err := git.NewLocalRepository(path)
	if err != nil {
		return err
	}
	if repo.IsNil() {
		return fmt.Errorf("%s is not inside a git repository", path)
	}

	entry := config.WorkspaceEntry{Owner: flags.Owner, Path: repo.Root()}
	if err := config.SetWorkspace(flags.Name, entry); err != nil {
		return errors.Wrapf(err, "failed to save workspace %s", flags.Name)
	}

	log.From(ctx).Successf("Workspace %s added: %s", flags.Name, entry.Path)

	return nil
}
