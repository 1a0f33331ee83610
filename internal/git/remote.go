package git

import (
	"context"
	"errors"
	"fmt"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const DefaultRemote = "origin"

func (r *Repository) HasRemote(name string) bool {
	if r.IsNil() {
		return false
	}

	_, err := r.repo.Remote(name)
	return err == nil
}

// Fetch updates the remote tracking refs of the given branches. An empty
// accessToken uses whatever credentials the transport picks up by itself.
func (r *Repository) Fetch(ctx context.Context, remote, accessToken string, branches ...string) error {
	if r.IsNil() {
		return ErrNotInitialized
	}

	var refSpecs []config.RefSpec
	for _, b := range branches {
		refSpecs = append(refSpecs, config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", b, remote, b)))
	}

	err := r.repo.FetchContext(ctx, &gitc.FetchOptions{
		RemoteName: remote,
		RefSpecs:   refSpecs,
		Auth:       tokenAuth(accessToken),
	})
	if errors.Is(err, gitc.NoErrAlreadyUpToDate) || errors.Is(err, transport.ErrEmptyUploadPackRequest) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}

	return nil
}

// RemoteBranchHash returns the hash of refs/remotes/<remote>/<branch>, or an
// empty string if the ref does not exist.
func (r *Repository) RemoteBranchHash(remote, branch string) (string, error) {
	if r.IsNil() {
		return "", ErrNotInitialized
	}

	ref, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("git: %w", err)
	}

	return ref.Hash().String(), nil
}

// tokenAuth sends token as the password of HTTPS basic auth. Hosts that take
// personal access tokens ignore the user name as long as it is not empty.
func tokenAuth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "teammerge", Password: token}
}
