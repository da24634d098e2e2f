// pkg/installer/sweep_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test the standalone sweep operation

package installer_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/installer"
	"github.com/arthur-debert/agentlink/pkg/links"
	"github.com/arthur-debert/agentlink/pkg/lock"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	tests := []struct {
		name      string
		dryRun    bool
		policy    links.SweepPolicy
		keep      []string
		wantSwept []string
		wantLeft  []string
	}{
		{
			name:      "all",
			policy:    links.SweepAll,
			wantSwept: []string{"inside", "outside"},
			wantLeft:  []string{"file.md", "good"},
		},
		{
			name:      "managed_only",
			policy:    links.SweepManaged,
			wantSwept: []string{"inside"},
			wantLeft:  []string{"file.md", "good", "outside"},
		},
		{
			name:      "keep",
			policy:    links.SweepAll,
			keep:      []string{"outside"},
			wantSwept: []string{"inside"},
			wantLeft:  []string{"file.md", "good", "outside"},
		},
		{
			name:      "dry_run",
			dryRun:    true,
			policy:    links.SweepAll,
			wantSwept: []string{"inside", "outside"},
			wantLeft:  []string{"file.md", "good", "inside", "outside"},
		},
		{
			name:     "none",
			policy:   links.SweepNone,
			wantLeft: []string{"file.md", "good", "inside", "outside"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			good := testutil.CreateFile(t, f.repo, "opencode/good.md", "x")
			testutil.CreateSymlink(t, good, filepath.Join(f.target, "good"))
			testutil.CreateSymlink(t, filepath.Join(f.repo, "opencode", "gone.md"), filepath.Join(f.target, "inside"))
			testutil.CreateSymlink(t, filepath.Join(f.tmp, "elsewhere", "gone"), filepath.Join(f.target, "outside"))
			testutil.CreateFile(t, f.target, "file.md", "user")

			inst := f.installer(t, func(o *installer.Options) {
				o.Sweep = links.SweepOptions{Policy: tt.policy, Keep: tt.keep}
			})

			report, err := inst.Sweep(tt.dryRun)
			require.NoError(t, err)
			assert.Equal(t, "sweep", report.Command)
			assert.Equal(t, tt.dryRun, report.DryRun)
			assert.Equal(t, installer.PhaseDone, report.Phase)
			assert.ElementsMatch(t, tt.wantSwept, report.Swept)
			assert.Equal(t, tt.wantLeft, listDir(t, f.target))
		})
	}
}

func TestSweep_MissingTargetIsEmpty(t *testing.T) {
	f := newFixture(t)
	report, err := f.installer(t).Sweep(false)
	require.NoError(t, err)
	assert.Empty(t, report.Swept)
}

func TestSweep_LockHeld(t *testing.T) {
	f := newFixture(t)
	testutil.CreateSymlink(t, filepath.Join(f.repo, "gone"), filepath.Join(f.target, "stale"))
	lockPath := filepath.Join(f.tmp, "state", "install.lock")

	held, err := lock.Acquire(lockPath)
	require.NoError(t, err)
	defer held.Release()

	inst := f.installer(t, func(o *installer.Options) { o.LockPath = lockPath })

	_, err = inst.Sweep(false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallLocked))
	assert.True(t, testutil.SymlinkExists(t, filepath.Join(f.target, "stale")))

	// A dry run takes no lock
	report, err := inst.Sweep(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, report.Swept)
}
