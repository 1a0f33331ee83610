package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectChangesets(t *testing.T) {
	t.Parallel()

	pending := []Changeset{{ID: 2}, {ID: 5}, {ID: 7}, {ID: 8}, {ID: 12}}

	tests := []struct {
		name    string
		ids     []int
		want    []int
		wantErr string
	}{
		{name: "single", ids: []int{7}, want: []int{7}},
		{name: "contiguous", ids: []int{2, 5, 7, 8}, want: []int{2, 5, 7, 8}},
		{name: "unordered and repeated", ids: []int{8, 5, 7, 5}, want: []int{5, 7, 8}},
		{name: "empty", ids: nil, wantErr: "no changesets selected"},
		{name: "unknown", ids: []int{3}, wantErr: "changeset 3 is not pending"},
		{name: "gap", ids: []int{2, 7}, wantErr: "changesets must be contiguous: 2 and 7 have pending changesets between them"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectChangesets(pending, tt.ids)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllChangesetIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{2, 3}, AllChangesetIDs([]Changeset{{ID: 2}, {ID: 3}}))
}

func TestParseCherry(t *testing.T) {
	t.Parallel()

	got := parseCherry("+ aaa\n- bbb\n+ ccc\n\n")
	assert.Equal(t, map[string]bool{"aaa": true, "ccc": true}, got)
}

func TestPendingChangesets(t *testing.T) {
	requireNativeGit(t)

	r := newTestRepo(t)
	r.withFeatureBranch()
	svc := r.service("")

	pending, err := svc.PendingChangesets(context.Background(), r.workspace(), "feature", "main")
	require.NoError(t, err)

	require.Len(t, pending, 3)
	assert.Equal(t, []int{2, 3, 4}, AllChangesetIDs(pending))
	assert.Equal(t, "first feature change", pending[0].Comment)
	assert.Equal(t, []int{10, 11}, pending[0].WorkItemIDs)
	assert.Equal(t, "dev", pending[0].Author)

	_, err = svc.PendingChangesets(context.Background(), r.workspace(), "feature", "missing")
	assert.EqualError(t, err, "branch missing not found (available: feature, main)")
}
