// Package lock serializes install runs with an advisory file lock.
package lock

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/gofrs/flock"
)

// Lock is a held install lock.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the lock at path without blocking. A lock held by another
// run is an INSTALL_LOCKED error. The parent directory is created.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to create lock directory for %s", path)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "acquire lock %s", path)
	}
	if !ok {
		return nil, errors.Newf(errors.ErrInstallLocked, "another agentlink install is running (lock %s)", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("lock")
	logger.Debug().Str("path", path).Msg("Acquired install lock")
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. The lock file is left in place. Safe on nil.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	if err := l.fl.Unlock(); err != nil {
		logger := logging.GetLogger("lock")
		logger.Warn().Err(err).Str("path", l.path).Msg("Failed to release install lock")
	}
}
