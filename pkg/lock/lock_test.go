// pkg/lock/lock_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (flock)
// PURPOSE: Test that a second concurrent install is rejected

package lock_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "install.lock")

	first, err := lock.Acquire(path)
	require.NoError(t, err)
	assert.Equal(t, path, first.Path())

	_, err = lock.Acquire(path)
	require.Error(t, err)
	assert.True(t, errors.IsInstallError(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallLocked))

	first.Release()

	again, err := lock.Acquire(path)
	require.NoError(t, err)
	again.Release()
}

func TestRelease_Nil(t *testing.T) {
	var l *lock.Lock
	assert.NotPanics(t, l.Release)
}
