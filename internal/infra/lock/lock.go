// Package lock provides the repository-level exclusive lock that guards
// state-mutating operations against concurrent cs processes.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// retryInterval is how often a blocked acquirer re-attempts the lock.
const retryInterval = 50 * time.Millisecond

// FileLocker implements domain.RepoLocker with an advisory flock on a
// lock file under the repository's snap directory.
type FileLocker struct {
	path string
}

// New creates a FileLocker for the given lock file path.
func New(path string) *FileLocker {
	return &FileLocker{path: path}
}

// Acquire takes the exclusive lock, polling until timeout. It fails with
// ErrBusy when another process holds the lock for the whole window.
func (l *FileLocker) Acquire(timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			break
		}
		if err != syscall.EWOULDBLOCK {
			_ = f.Close()
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("%w: lock held by another process", domain.ErrBusy)
		}
		time.Sleep(retryInterval)
	}

	release := func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
	}
	return release, nil
}

var _ domain.RepoLocker = (*FileLocker)(nil)
