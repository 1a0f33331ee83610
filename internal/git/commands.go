package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-version"
)

// MinimumNativeVersion is the oldest git binary that accepts a mainline
// (-m 1) when cherry-picking commits that are not merges.
const MinimumNativeVersion = "2.21.0"

// RunGitCommand executes a native git command in the given directory and returns its stdout.
// It captures stdout and stderr separately, returning stderr in the error message on failure.
func RunGitCommand(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run git %s: %w - %s", args[0], err, strings.TrimSpace(errb.String()))
	}

	return outb.String(), nil
}

// RunGitCommandInteractive runs a native git command attached to the
// current terminal, for tools that prompt the user.
func RunGitCommandInteractive(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run git %s: %w", args[0], err)
	}

	return nil
}

// RunGitCommandInRepo executes a native git command in the repository's root directory.
// Returns an error if the repository is not initialized.
func (r *Repository) RunGitCommandInRepo(ctx context.Context, args ...string) (string, error) {
	root := r.Root()
	if root == "" {
		return "", fmt.Errorf("repository root not found")
	}
	return RunGitCommand(ctx, root, args...)
}

// NativeVersion returns the version of the git binary on PATH.
func NativeVersion(ctx context.Context) (*version.Version, error) {
	out, err := RunGitCommand(ctx, "", "version")
	if err != nil {
		return nil, err
	}

	return parseNativeVersion(out)
}

// RequireNativeVersion fails if the git binary is older than
// MinimumNativeVersion.
func RequireNativeVersion(ctx context.Context) error {
	v, err := NativeVersion(ctx)
	if err != nil {
		return err
	}

	minimum := version.Must(version.NewVersion(MinimumNativeVersion))
	if v.LessThan(minimum) {
		return fmt.Errorf("git %s is too old, %s or newer is required", v, minimum)
	}

	return nil
}

// parseNativeVersion understands `git version` output such as
// "git version 2.39.3 (Apple Git-145)" and "git version 2.42.0.windows.2".
func parseNativeVersion(out string) (*version.Version, error) {
	fields := strings.Fields(out)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unexpected git version output %q", strings.TrimSpace(out))
	}

	var segments []string
	for _, s := range strings.Split(fields[2], ".") {
		if s == "" || strings.Trim(s, "0123456789") != "" {
			break
		}
		segments = append(segments, s)
	}

	v, err := version.NewVersion(strings.Join(segments, "."))
	if err != nil {
		return nil, fmt.Errorf("unexpected git version %q: %w", fields[2], err)
	}

	return v, nil
}
