// Package utils holds small helpers shared by the CLI packages.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// IsInteractive reports whether stdout is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ExpandPath resolves a leading ~/ against the home directory and makes the
// result absolute. path is returned unchanged if either step fails.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, rest)
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// EnsureParentDir creates the directory that will hold file.
func EnsureParentDir(file string) error {
	return os.MkdirAll(filepath.Dir(file), 0o755)
}

// CommandLine renders cmd with the flags the user set, e.g.
// "teammerge merge --changesets=2,5 --source=main".
func CommandLine(cmd *cobra.Command) string {
	parts := []string{cmd.CommandPath()}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}

		value := f.Value.String()
		if strings.HasSuffix(f.Value.Type(), "Slice") {
			value = strings.Trim(value, "[]")
		}
		parts = append(parts, fmt.Sprintf("--%s=%s", f.Name, value))
	})

	return strings.Join(parts, " ")
}
