package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teammerge/teammerge/internal/charm/styles"
	"github.com/teammerge/teammerge/internal/config"
	"github.com/teammerge/teammerge/internal/log"
	"github.com/teammerge/teammerge/internal/merge"
	"github.com/teammerge/teammerge/internal/model"
	"github.com/teammerge/teammerge/internal/utils"
	"go.uber.org/zap"
)

const rootLong = `teammerge merges a contiguous range of changesets from a source branch into a target branch and prepares the check-in:
	- refuses to start while the workspace has pending changes
	- optionally gets the latest version of the branches and resolves conflicts
	- collects the work items referenced by the merged changesets
	- writes a check-in comment from a configurable template
`

// NewRootCmd builds the command tree. Settings are loaded before any
// subcommand runs.
func NewRootCmd(version, artifactArch string) (*cobra.Command, error) {
	// keep commands in the order they are added
	cobra.EnableCommandSorting = false

	root := &cobra.Command{
		Use:           "teammerge",
		Short:         "Merge changesets between branches of a working copy",
		Long:          rootLong,
		Version:       version + "\n" + artifactArch,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(cmd); err != nil {
				return err
			}
			return config.Load()
		},
	}

	root.PersistentFlags().String("logLevel", string(log.LevelInfo), fmt.Sprintf("the log level (available options: [%s])", strings.Join(log.Levels, ", ")))

	for _, command := range []model.Command{mergeCmd, changesetsCmd, configureCmd} {
		c, err := command.Init()
		if err != nil {
			return nil, err
		}
		root.AddCommand(c)
	}

	return root, nil
}

func Execute(version, artifactArch string) {
	l := log.New()

	root, err := NewRootCmd(version, artifactArch)
	if err != nil {
		l.Error("", zap.Error(err))
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		var aborted *merge.AbortedError
		if errors.As(err, &aborted) {
			l.PrintlnUnstyled(styles.RenderErrorMessage("Merge aborted", aborted.Reason))
			os.Exit(1)
		}

		l.Error("", zap.Error(err))
		l.WithInteractiveOnly().PrintfStyled(styles.DimmedItalic, "Run '%s --help' for usage.\n", root.CommandPath())
		os.Exit(1)
	}
}

func setLogLevel(cmd *cobra.Command) error {
	logLevel, err := cmd.Flags().GetString("logLevel")
	if err != nil {
		return err
	}
	if !slices.Contains(log.Levels, logLevel) {
		return fmt.Errorf("log level must be one of: %s", strings.Join(log.Levels, ", "))
	}

	l := log.New().WithLevel(log.Level(logLevel))
	l.Debug("Running command", zap.String("command", utils.CommandLine(cmd)))
	cmd.SetContext(log.With(cmd.Context(), l))

	return nil
}
