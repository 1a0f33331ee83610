package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings gives typed lookups over a viper instance.
type Settings struct {
	v *viper.Viper
}

// NewSettings wraps v. Unset keys fall back to the built-in defaults.
func NewSettings(v *viper.Viper) *Settings {
	applyDefaults(v)
	return &Settings{v: v}
}

func (s *Settings) GetBool(key Key) bool {
	return s.v.GetBool(string(key))
}

func (s *Settings) GetString(key Key) string {
	return s.v.GetString(string(key))
}

// GetStringSlice reads a list setting. A plain string, as set through the
// environment, is read as a comma-separated list.
func (s *Settings) GetStringSlice(key Key) []string {
	if raw, ok := s.v.Get(string(key)).(string); ok {
		return splitList(raw)
	}

	return s.v.GetStringSlice(string(key))
}

func (s *Settings) IsSet(key Key) bool {
	return s.v.IsSet(string(key))
}

// Workspaces decodes the workspaces section.
func (s *Settings) Workspaces() (map[string]WorkspaceEntry, error) {
	workspaces := map[string]WorkspaceEntry{}
	if err := s.v.UnmarshalKey(string(Workspaces), &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", Workspaces, err)
	}

	return workspaces, nil
}

// AllSettings returns every editable key with its effective value.
func (s *Settings) AllSettings() map[string]any {
	all := map[string]any{}
	for _, key := range Keys {
		all[string(key)] = s.v.Get(string(key))
	}

	return all
}
