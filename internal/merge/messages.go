package merge

const (
	msgCheckingPendingChanges = "Checking pending changes"
	msgGettingLatestVersion   = "Getting latest version of %s branch %s"
	msgGettingLatestBoth      = "Getting latest version of %s branches %s and %s"
	msgResolvingConflicts     = "Resolving conflicts"
	msgMergingBranches        = "Merging branches"
	msgCollectingWorkItems    = "Collecting work items"
	msgNotifying              = "Preparing check-in"

	reasonPendingChanges      = "the workspace has pending changes, check them in or undo them before merging"
	reasonConflicts           = "conflicts must be resolved manually"
	reasonUnresolvedConflicts = "conflicts remain after resolution"

	// LatestVersionMarker replaces the work item list in the check-in comment
	// when the comment should point at the latest version instead.
	LatestVersionMarker = "latest version"
)
