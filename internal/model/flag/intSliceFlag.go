package flag

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// IntSliceFlag accepts a comma-separated list of integers, repeated or not:
// --changesets 2,5 --changesets 7
type IntSliceFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 []int
}

func (f IntSliceFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().IntSliceP(f.Name, f.Shorthand, f.DefaultValue, f.Description+" (comma-separated list)")
	return annotate(cmd, f.Name, f.Required, f.Hidden)
}

func (f IntSliceFlag) GetName() string {
	return f.Name
}

// ParseValue reads the pflag rendering of the value, e.g. "[2,5,7]".
func (f IntSliceFlag) ParseValue(v string) (interface{}, error) {
	v = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(v), "["), "]")

	values := []int{}
	if v == "" {
		return values, nil
	}

	for _, s := range strings.Split(v, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		values = append(values, i)
	}

	return values, nil
}
