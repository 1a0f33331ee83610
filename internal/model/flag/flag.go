// Package flag declares typed command line flags. A flag registers itself on
// a cobra command and turns pflag's string rendering of its value back into
// the value stored in the command's flags struct.
package flag

import (
	"strconv"

	"github.com/spf13/cobra"
)

type Flag interface {
	Init(cmd *cobra.Command) error
	GetName() string
	ParseValue(v string) (interface{}, error)
}

type StringFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 string
	// Completions suggests values for shell completion.
	Completions func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)
}

func (f StringFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().StringP(f.Name, f.Shorthand, f.DefaultValue, f.Description)

	if f.Completions != nil {
		if err := cmd.RegisterFlagCompletionFunc(f.Name, f.Completions); err != nil {
			return err
		}
	}

	return annotate(cmd, f.Name, f.Required, f.Hidden)
}

func (f StringFlag) GetName() string {
	return f.Name
}

func (f StringFlag) ParseValue(v string) (interface{}, error) {
	return v, nil
}

type BooleanFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 bool
}

func (f BooleanFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().BoolP(f.Name, f.Shorthand, f.DefaultValue, f.Description)
	return annotate(cmd, f.Name, f.Required, f.Hidden)
}

func (f BooleanFlag) GetName() string {
	return f.Name
}

func (f BooleanFlag) ParseValue(v string) (interface{}, error) {
	return strconv.ParseBool(v)
}

// annotate marks name required and/or hidden on cmd.
func annotate(cmd *cobra.Command, name string, required, hidden bool) error {
	if required {
		if err := cmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}
	if hidden {
		return cmd.Flags().MarkHidden(name)
	}

	return nil
}

var _ = []Flag{
	StringFlag{},
	BooleanFlag{},
	EnumFlag{},
	IntSliceFlag{},
}
