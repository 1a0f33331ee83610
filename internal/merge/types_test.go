package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace_String(t *testing.T) {
	assert.Equal(t, "alice@feature", Workspace{Owner: "alice", Name: "feature"}.String())
	assert.Equal(t, "feature", Workspace{Name: "feature"}.String())
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{
			name: "valid",
			req:  Request{SourceBranch: "main", TargetBranch: "dev", OrderedChangesetIDs: []int{1}},
		},
		{
			name:    "no changesets",
			req:     Request{SourceBranch: "main", TargetBranch: "dev"},
			wantErr: "no changesets selected",
		},
		{
			name:    "missing branch",
			req:     Request{SourceBranch: " ", TargetBranch: "dev", OrderedChangesetIDs: []int{1}},
			wantErr: "source and target branch are required",
		},
		{
			name:    "same branch",
			req:     Request{SourceBranch: "dev", TargetBranch: "dev", OrderedChangesetIDs: []int{1}},
			wantErr: "source and target branch must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRequest_ChangesetRange(t *testing.T) {
	minID, maxID := Request{OrderedChangesetIDs: []int{9}}.changesetRange()
	assert.Equal(t, 9, minID)
	assert.Equal(t, 9, maxID)

	minID, maxID = Request{OrderedChangesetIDs: []int{8, 2, 7, 5}}.changesetRange()
	assert.Equal(t, 2, minID)
	assert.Equal(t, 8, maxID)
}

func TestParseBranchLatestSelection(t *testing.T) {
	tests := map[string]BranchLatestSelection{
		"none":              BranchNone,
		"source":            BranchSource,
		"Target":            BranchTarget,
		"source-and-target": BranchSourceAndTarget,
		"SourceAndTarget":   BranchSourceAndTarget,
		" source ":          BranchSource,
	}

	for in, want := range tests {
		got, err := ParseBranchLatestSelection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBranchLatestSelection("sideways")
	assert.ErrorContains(t, err, "available options: [none, source, target, source-and-target]")
}

func TestBranchLatestSelection_Description(t *testing.T) {
	assert.Equal(t, "source and target", BranchSourceAndTarget.Description())
	assert.Equal(t, "target", BranchTarget.Description())
}

func TestParseCheckInCommentMode(t *testing.T) {
	tests := map[string]CheckInCommentMode{
		"none":                              CommentNone,
		"Fixed":                             CommentFixed,
		"merge-direction":                   CommentMergeDirection,
		"WorkItemIds":                       CommentWorkItemIDs,
		"changeset-ids":                     CommentChangesetIDs,
		"MergeDirectionAndWorkItems":        CommentMergeDirectionAndWorkItems,
		"merge-direction-and-changeset-ids": CommentMergeDirectionAndChangesetIDs,
	}

	for in, want := range tests {
		got, err := ParseCheckInCommentMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCheckInCommentMode("poetry")
	assert.Error(t, err)
}

func TestCheckInCommentMode_RoundTrip(t *testing.T) {
	for _, opt := range CheckInCommentModeOptions() {
		m, err := ParseCheckInCommentMode(opt)
		require.NoError(t, err)
		assert.Equal(t, opt, m.String())
	}
}
