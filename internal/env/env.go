package env

import "os"

func IsGithubAction() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

func IsGithubDebugMode() bool {
	return os.Getenv("RUNNER_DEBUG") == "true"
}

// ConfigDir returns the TEAMMERGE_CONFIG_DIR environment variable value.
// When set it replaces ~/.teammerge as the location of config.yaml.
func ConfigDir() string {
	return os.Getenv("TEAMMERGE_CONFIG_DIR")
}

func IsLockDisabled() bool {
	return os.Getenv("TEAMMERGE_WORKSPACE_LOCK_DISABLED") == "true"
}

// GitToken returns the access token used when fetching over HTTPS.
func GitToken() string {
	return os.Getenv("TEAMMERGE_GIT_TOKEN")
}
