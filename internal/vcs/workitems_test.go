package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkItemReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    []int
	}{
		{message: "no references", want: []int{}},
		{message: "Fix login AB#12", want: []int{12}},
		{message: "AB#5, AB#75 and ab#85\n\nAB#5 again", want: []int{5, 75, 85}},
		{message: "XAB#3 is not a reference, AB#x neither", want: []int{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseWorkItemReferences(tt.message), tt.message)
	}
}

func TestFormatWorkItemReferences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AB#5 AB#75", FormatWorkItemReferences([]int{5, 75}))
	assert.Equal(t, "", FormatWorkItemReferences(nil))
}

func TestCatalog_Filter(t *testing.T) {
	t.Parallel()

	c := &Catalog{WorkItems: []WorkItem{
		{ID: 5, Type: "Bug"},
		{ID: 75, Type: "Code Review Request"},
		{ID: 85, Type: "Task"},
	}}

	assert.Equal(t, []int{5, 85, 99}, c.Filter([]int{5, 75, 85, 99}, []string{"code review request"}))
	assert.Equal(t, []int{75, 99}, c.Filter([]int{5, 75, 85, 99}, []string{"Bug", " Task "}))
	assert.Equal(t, []int{5, 75}, c.Filter([]int{5, 75}, nil))
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	c, err := LoadCatalog(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, c.WorkItems)

	path := filepath.Join(dir, "workitems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`workItems:
  - id: 10
    type: Bug
    title: Login fails
  - id: 11
    type: Code Review Request
`), 0o644))

	c, err = LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "Bug", c.TypeOf(10))
	assert.Equal(t, "Code Review Request", c.TypeOf(11))
	assert.Equal(t, "", c.TypeOf(12))

	require.NoError(t, os.WriteFile(path, []byte("workItems: [: bad"), 0o644))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}
