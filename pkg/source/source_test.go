// pkg/source/source_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test source path validation outcomes

package source_test

import (
	"io/fs"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/source"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "opencode/AGENTS.md", "rules")
	testutil.CreateDir(t, root, "opencode/command")

	tests := []struct {
		name       string
		rel        string
		kind       source.Kind
		wantStatus source.Status
		wantActual source.Kind
	}{
		{"file_any", "opencode/AGENTS.md", source.KindAny, source.Found, source.KindFile},
		{"file_expected", "opencode/AGENTS.md", source.KindFile, source.Found, source.KindFile},
		{"file_expected_dir", "opencode/AGENTS.md", source.KindDirectory, source.WrongKind, source.KindFile},
		{"dir_any", "opencode/command", source.KindAny, source.Found, source.KindDirectory},
		{"dir_expected_file", "opencode/command", source.KindFile, source.WrongKind, source.KindDirectory},
		{"missing", "opencode/nope.md", source.KindAny, source.Missing, source.KindAny},
		{"missing_under_file", "opencode/AGENTS.md/child", source.KindAny, source.Missing, source.KindAny},
	}

	r := source.NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(root, tt.rel, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantActual, res.Actual)
			assert.Equal(t, tt.rel, res.Relative)

			if tt.wantStatus == source.Found {
				assert.True(t, res.OK())
				assert.True(t, filepath.IsAbs(res.Path))
				assert.Equal(t, filepath.Join(root, tt.rel), res.Path)
			} else {
				assert.False(t, res.OK())
				assert.Empty(t, res.Path)
			}
		})
	}
}

func TestResolve_StatFailures(t *testing.T) {
	root := t.TempDir()
	target := testutil.CreateFile(t, root, "a.md", "x")

	tests := []struct {
		name       string
		err        error
		wantErr    bool
		wantStatus source.Status
	}{
		{"permission_denied_is_skipped", fs.ErrPermission, false, source.Inaccessible},
		{"io_error_is_returned", syscall.EIO, true, source.Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewFaulty(filesystem.NewOS(), filesystem.Fault{
				Op:   filesystem.OpStat,
				Path: target,
				Err:  tt.err,
			})

			res, err := source.NewResolver(fsys).Resolve(root, "a.md", source.KindAny)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, "inaccessible", res.Status.String())
			assert.False(t, res.OK())
			assert.Empty(t, res.Path)
			assert.Equal(t, source.KindAny, res.Actual)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   source.Kind
		wantOK bool
	}{
		{"", source.KindAny, true},
		{"either", source.KindAny, true},
		{"file", source.KindFile, true},
		{"dir", source.KindDirectory, true},
		{"directory", source.KindDirectory, true},
		{"socket", source.KindAny, false},
	}
	for _, tt := range tests {
		got, ok := source.ParseKind(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}
