package model

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"
	"github.com/teammerge/teammerge/internal/model/flag"
)

type Command interface {
	Init() (*cobra.Command, error)
}

// CommandGroup is a command that only holds subcommands.
type CommandGroup struct {
	Usage, Short, Long string
	Aliases            []string
	Commands           []Command
}

func (c CommandGroup) Init() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     c.Usage,
		Short:   c.Short,
		Long:    c.Long,
		Aliases: c.Aliases,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, subcommand := range c.Commands {
		subcmd, err := subcommand.Init()
		if err != nil {
			return nil, err
		}
		cmd.AddCommand(subcmd)
	}

	return cmd, nil
}

// ExecutableCommand is a runnable "leaf" command that can be executed directly and has no subcommands
// F is a struct type that represents the flags for the command. The json tags on the struct fields are used to map to the command line flags
type ExecutableCommand[F interface{}] struct {
	Usage, Short, Long string
	Flags              []flag.Flag
	PreRun             func(cmd *cobra.Command, flags *F) error
	Run                func(ctx context.Context, flags F) error
	Hidden             bool
}

func (c ExecutableCommand[F]) Init() (*cobra.Command, error) {
	preRun := func(cmd *cobra.Command, args []string) error {
		if c.PreRun == nil {
			return nil
		}

		flags, err := c.GetFlagValues(cmd)
		if err != nil {
			return err
		}

		return c.PreRun(cmd, flags)
	}

	run := func(cmd *cobra.Command, args []string) error {
		flags, err := c.GetFlagValues(cmd)
		if err != nil {
			return err
		}

		// usage errors are reported by cobra before this point
		cmd.SilenceUsage = true

		return c.Run(cmd.Context(), *flags)
	}

	if c.Run == nil {
		return nil, fmt.Errorf("command %s has no Run function", c.Usage)
	}

	if err := c.checkFlags(); err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:     c.Usage,
		Short:   c.Short,
		Long:    c.Long,
		PreRunE: preRun,
		RunE:    run,
		Hidden:  c.Hidden,
	}

	for _, flag := range c.Flags {
		if err := flag.Init(cmd); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

// checkFlags asserts every declared flag has a matching field in F.
func (c ExecutableCommand[F]) checkFlags() error {
	var f F
	fields := structs.Fields(f)

	tags := make([]string, len(fields))
	for i, field := range fields {
		tags[i] = field.Tag("json")
	}

	for _, flag := range c.Flags {
		if !slices.Contains(tags, flag.GetName()) {
			return fmt.Errorf("flag %s is missing from flags type for command %s", flag.GetName(), c.Usage)
		}
	}

	return nil
}

// GetFlagValues decodes the declared flags into F through its json tags.
func (c ExecutableCommand[F]) GetFlagValues(cmd *cobra.Command) (*F, error) {
	values := make(map[string]interface{}, len(c.Flags))

	for _, def := range c.Flags {
		f := cmd.Flags().Lookup(def.GetName())
		if f == nil {
			return nil, fmt.Errorf("flag --%s is not registered on %s", def.GetName(), cmd.Name())
		}

		v, err := def.ParseValue(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("invalid value for --%s: %w", f.Name, err)
		}
		values[f.Name] = v
	}

	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}

	var flags F
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, err
	}

	return &flags, nil
}

// Verify that the command types implement the Command interface
var _ = []Command{
	&ExecutableCommand[interface{}]{},
	&CommandGroup{},
}
