package git

import (
	"fmt"
	"path/filepath"
)

// GitDir is the repository's .git directory.
func (r *Repository) GitDir() string {
	return filepath.Join(r.root, ".git")
}

// SetLocalConfig writes section.key = value to the repository's own config
// file.
func (r *Repository) SetLocalConfig(section, key, value string) error {
	if r.IsNil() {
		return ErrNotInitialized
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}

	cfg.Raw.Section(section).SetOption(key, value)

	if err := r.repo.Storer.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write git config: %w", err)
	}

	return nil
}

// LocalConfig reads section.key from the repository's own config file.
func (r *Repository) LocalConfig(section, key string) (string, error) {
	if r.IsNil() {
		return "", ErrNotInitialized
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}

	return cfg.Raw.Section(section).Options.Get(key), nil
}
