package github_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teammerge/teammerge/internal/github"
)

func TestMergeSummary_Markdown(t *testing.T) {
	md := github.MergeSummary{Workspace: "dev@app", Comment: "Merge main --> dev", WorkItemIDs: []int{5, 75}}.Markdown()

	assert.Contains(t, md, "# Merge Summary")
	assert.Contains(t, md, "| dev@app   | Merge main --> dev | AB#5 AB#75 |")

	md = github.MergeSummary{Workspace: "dev@app"}.Markdown()
	assert.Contains(t, md, "| dev@app   | _none_           | _none_     |")
}

func TestGenerateMergeSummary(t *testing.T) {
	summaryFile := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, os.WriteFile(summaryFile, nil, 0o644))

	t.Setenv("GITHUB_STEP_SUMMARY", summaryFile)

	t.Setenv("GITHUB_ACTIONS", "false")
	github.GenerateMergeSummary(context.Background(), github.MergeSummary{Workspace: "dev@app"})
	data, err := os.ReadFile(summaryFile)
	require.NoError(t, err)
	assert.Empty(t, data)

	t.Setenv("GITHUB_ACTIONS", "true")
	github.GenerateMergeSummary(context.Background(), github.MergeSummary{Workspace: "dev@app", WorkItemIDs: []int{5}})
	data, err = os.ReadFile(summaryFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AB#5")
}
