package git

import (
	"errors"
	"fmt"
	"sort"
	"time"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

func (r *Repository) HeadHash() (string, error) {
	if r.IsNil() {
		return "", nil
	}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("git: %w", err)
	}

	return head.Hash().String(), nil
}

func (r *Repository) CheckoutBranch(branch string) error {
	if r.IsNil() {
		return ErrNotInitialized
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("git: %w", err)
	}

	if err := wt.Checkout(&gitc.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	}); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}

	return nil
}

// CreateBranch creates branch at HEAD and checks it out.
func (r *Repository) CreateBranch(branch string) error {
	if r.IsNil() {
		return ErrNotInitialized
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("git: %w", err)
	}

	if err := wt.Checkout(&gitc.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}

	return nil
}

// writeBlob stores content in the object database and returns its hash.
func (r *Repository) writeBlob(content []byte) (plumbing.Hash, error) {
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(content)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create object writer: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("failed to write blob content: %w", err)
	}
	writer.Close()

	return r.repo.Storer.SetEncodedObject(obj)
}

// SetConflictState marks path as unmerged in the index by writing the base
// (stage 1), ours (stage 2) and theirs (stage 3) versions, the same state a
// conflicting merge leaves behind. A nil base writes only stages 2 and 3.
func (r *Repository) SetConflictState(path string, base, ours, theirs []byte) error {
	if r.IsNil() {
		return ErrNotInitialized
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	entries := make([]*index.Entry, 0, len(idx.Entries)+3)
	for _, e := range idx.Entries {
		if e.Name != path {
			entries = append(entries, e)
		}
	}

	now := time.Now()
	stages := []struct {
		stage   index.Stage
		content []byte
	}{
		{index.AncestorMode, base},
		{index.OurMode, ours},
		{index.TheirMode, theirs},
	}

	for _, s := range stages {
		if s.content == nil {
			continue
		}

		hash, err := r.writeBlob(s.content)
		if err != nil {
			return fmt.Errorf("failed to write stage %d blob: %w", s.stage, err)
		}

		entries = append(entries, &index.Entry{
			Name:       path,
			Hash:       hash,
			Mode:       filemode.Regular,
			Stage:      s.stage,
			CreatedAt:  now,
			ModifiedAt: now,
			Size:       uint32(len(s.content)),
		})
	}

	// git requires the index sorted by (name, stage)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Stage < entries[j].Stage
	})
	idx.Entries = entries

	if err := r.repo.Storer.SetIndex(idx); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	return nil
}
