package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/teammerge/teammerge/internal/env"
)

var (
	vCfg   = viper.New()
	cfgDir string
)

// WorkspaceEntry binds a named workspace to a local working copy.
type WorkspaceEntry struct {
	Owner string `mapstructure:"owner" yaml:"owner" json:"owner"`
	Path  string `mapstructure:"path" yaml:"path" json:"path"`
}

// Load reads ~/.teammerge/config.yaml (or $TEAMMERGE_CONFIG_DIR/config.yaml).
// A missing file is not an error; defaults apply.
func Load() error {
	dir := env.ConfigDir()
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".teammerge")
	}

	v, err := load(dir)
	if err != nil {
		return err
	}

	vCfg = v
	cfgDir = dir

	return nil
}

func load(dir string) (*viper.Viper, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("teammerge")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

func applyDefaults(v *viper.Viper) {
	for key, value := range defaults() {
		v.SetDefault(string(key), value)
	}
}

// Current returns the settings loaded by Load.
func Current() *Settings {
	return &Settings{v: vCfg}
}

// Dir returns the directory config.yaml is read from and written to.
func Dir() string {
	return cfgDir
}

// SetValue stores a raw value for key and writes config.yaml.
func SetValue(key Key, value any) error {
	vCfg.Set(string(key), value)
	return save()
}

// GetWorkspaces returns the configured workspaces keyed by workspace name.
func GetWorkspaces() (map[string]WorkspaceEntry, error) {
	return Current().Workspaces()
}

// SetWorkspace registers (or replaces) a named workspace.
func SetWorkspace(name string, entry WorkspaceEntry) error {
	workspaces, err := GetWorkspaces()
	if err != nil {
		return err
	}

	workspaces[name] = entry

	raw := map[string]any{}
	for n, w := range workspaces {
		raw[n] = map[string]any{"owner": w.Owner, "path": w.Path}
	}
	vCfg.Set(string(Workspaces), raw)

	return save()
}

func save() error {
	if cfgDir == "" {
		return fmt.Errorf("config has not been loaded")
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return err
	}

	if err := vCfg.WriteConfigAs(filepath.Join(cfgDir, "config.yaml")); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
