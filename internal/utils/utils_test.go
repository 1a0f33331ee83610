package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teammerge/teammerge/internal/utils"
)

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "", utils.CapitalizeFirst(""))
	assert.Equal(t, "Merging branches", utils.CapitalizeFirst("merging branches"))
	assert.Equal(t, "Ärger", utils.CapitalizeFirst("ärger"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".teammerge"), utils.ExpandPath("~/.teammerge"))

	dir := t.TempDir()
	assert.Equal(t, dir, utils.ExpandPath(dir))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "repo"), utils.ExpandPath("repo"))
}

func TestEnsureParentDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".teammerge", "defaults.yaml")

	require.NoError(t, utils.EnsureParentDir(file))
	assert.DirExists(t, filepath.Dir(file))
	assert.NoFileExists(t, file)
}

func TestCommandLine(t *testing.T) {
	root := &cobra.Command{Use: "teammerge"}
	sub := &cobra.Command{Use: "merge", Run: func(cmd *cobra.Command, args []string) {}}
	sub.Flags().String("source", "", "")
	sub.Flags().IntSlice("changesets", nil, "")
	sub.Flags().Bool("all", false, "")
	root.AddCommand(sub)

	require.NoError(t, sub.Flags().Set("source", "main"))
	require.NoError(t, sub.Flags().Set("changesets", "2,5"))

	assert.Equal(t, "teammerge merge --changesets=2,5 --source=main", utils.CommandLine(sub))
}
