// Package locks provides inter-process mutual exclusion for workspaces.
package locks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// WorkspaceMutex keeps two teammerge processes from merging into the same
// working copy at once. The lock is released automatically if the holding
// process dies.
//
// See:
//   - Linux: https://linux.die.net/man/2/flock
//   - Windows: https://docs.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
type WorkspaceMutex struct {
	Opts
	mu *flock.Flock
}

type Opts struct {
	// Dir holds the lock files. Defaults to os.TempDir().
	Dir string
}

func DefaultOpts() Opts {
	return Opts{Dir: os.TempDir()}
}

// WorkspaceLock returns the mutex guarding the working copy at root.
func WorkspaceLock(root string, o Opts) *WorkspaceMutex {
	if o.Dir == "" {
		o.Dir = os.TempDir()
	}

	return &WorkspaceMutex{Opts: o, mu: flock.New(filepath.Join(o.Dir, LockName(root)))}
}

// LockName derives a stable file name from the working copy path.
func LockName(root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return fmt.Sprintf("teammerge-%s.lock", hex.EncodeToString(sum[:8]))
}

// Path is the lock file backing the mutex.
func (m *WorkspaceMutex) Path() string {
	return m.mu.Path()
}

type TryLockResult struct {
	Attempt int
	Error   error
	Success bool
}

// TryLock keeps trying to take the lock every retryDelay until it succeeds
// or ctx is done, reporting each attempt on the returned channel.
func (m *WorkspaceMutex) TryLock(ctx context.Context, retryDelay time.Duration) <-chan TryLockResult {
	ch := make(chan TryLockResult)
	go func() {
		defer close(ch)

		for attempt := 0; ; attempt++ {
			ok, err := m.mu.TryLock()
			if err != nil {
				ch <- TryLockResult{Attempt: attempt, Error: fmt.Errorf("failed to acquire lock (pid %d): %w", os.Getpid(), err)}
				return
			}
			if ok {
				ch <- TryLockResult{Attempt: attempt, Success: true}
				return
			}

			select {
			case <-ctx.Done():
				ch <- TryLockResult{Attempt: attempt, Error: ctx.Err()}
				return
			case <-time.After(retryDelay):
				select {
				case ch <- TryLockResult{Attempt: attempt, Success: false}:
				case <-ctx.Done():
					ch <- TryLockResult{Attempt: attempt, Error: ctx.Err()}
					return
				}
			}
		}
	}()
	return ch
}

// Lock waits for the lock, calling onWait once if another process holds it.
func (m *WorkspaceMutex) Lock(ctx context.Context, retryDelay time.Duration, onWait func()) error {
	for result := range m.TryLock(ctx, retryDelay) {
		if result.Error != nil {
			return result.Error
		}
		if result.Success {
			return nil
		}
		if result.Attempt == 0 && onWait != nil {
			onWait()
		}
	}

	return fmt.Errorf("failed to acquire lock %s", m.Path())
}

func (m *WorkspaceMutex) Unlock() error {
	return m.mu.Unlock()
}
