package merge

import (
	"github.com/hashicorp/go-multierror"
	"github.com/teammerge/teammerge/internal/config"
)

// ValidateSettings checks the enumerated settings so a bad configuration is
// reported before any workspace is touched.
func ValidateSettings(settings Settings) error {
	var errs *multierror.Error

	if _, err := ParseBranchLatestSelection(settings.GetString(config.LatestVersionBranch)); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := ParseCheckInCommentMode(settings.GetString(config.CheckInCommentMode)); err != nil {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}
