package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teammerge/teammerge/internal/utils"
	"gopkg.in/yaml.v3"
)

const repositoryDefaultsFile = ".teammerge/defaults.yaml"

// BranchDefaults are the branches preselected for the next merge.
type BranchDefaults struct {
	SourceBranch string `yaml:"sourceBranch"`
	TargetBranch string `yaml:"targetBranch"`
}

func (d BranchDefaults) IsValid() bool {
	return strings.TrimSpace(d.SourceBranch) != "" && strings.TrimSpace(d.TargetBranch) != ""
}

// LoadBranchDefaults returns the saved branches, preferring the
// repository's own file when per-repository saving is enabled and the file
// holds a complete pair.
func LoadBranchDefaults(s *Settings, repoRoot string) BranchDefaults {
	global := BranchDefaults{
		SourceBranch: s.GetString(SourceBranch),
		TargetBranch: s.GetString(TargetBranch),
	}

	if !s.GetBool(SaveBranchPerRepository) || repoRoot == "" {
		return global
	}

	local, err := readRepositoryDefaults(repoRoot)
	if err != nil || !local.IsValid() {
		return global
	}

	return local
}

// SaveBranchDefaults records the branches of a successful merge.
func SaveBranchDefaults(repoRoot string, d BranchDefaults) error {
	if Current().GetBool(SaveBranchPerRepository) && repoRoot != "" {
		if err := writeRepositoryDefaults(repoRoot, d); err != nil {
			return err
		}
	}

	vCfg.Set(string(SourceBranch), d.SourceBranch)
	vCfg.Set(string(TargetBranch), d.TargetBranch)

	return save()
}

func readRepositoryDefaults(repoRoot string) (BranchDefaults, error) {
	var d BranchDefaults

	data, err := os.ReadFile(filepath.Join(repoRoot, repositoryDefaultsFile))
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	} else if err != nil {
		return d, err
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("failed to parse %s: %w", repositoryDefaultsFile, err)
	}

	return d, nil
}

func writeRepositoryDefaults(repoRoot string, d BranchDefaults) error {
	path := filepath.Join(repoRoot, repositoryDefaultsFile)
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("error marshalling branch defaults: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
