package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/teammerge/teammerge/cmd"
)

const completionsDir = "completions"

func main() {
	if err := os.RemoveAll(completionsDir); err != nil {
		fail("removing completions directory", err)
	}
	if err := os.Mkdir(completionsDir, 0o755); err != nil {
		fail("creating completions directory", err)
	}

	root, err := cmd.NewRootCmd("", "")
	if err != nil {
		fail("building command tree", err)
	}

	generators := map[string]func(path string) error{
		"bash": func(path string) error { return root.GenBashCompletionFileV2(path, true) },
		"zsh":  root.GenZshCompletionFile,
		"fish": func(path string) error { return root.GenFishCompletionFile(path, true) },
	}

	for shell, generate := range generators {
		path := filepath.Join(completionsDir, "teammerge."+shell)
		if err := generate(path); err != nil {
			fail("generating "+shell+" completion", err)
		}
	}
}

func fail(action string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", action, err)
	os.Exit(1)
}
