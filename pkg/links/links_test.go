// pkg/links/links_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (symlink semantics are under test)
// PURPOSE: Test link creation/replacement and the broken-link predicate

package links_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/links"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_ReplacesAllPriorStates(t *testing.T) {
	testutil.SkipOnWindows(t)

	tests := []struct {
		name         string
		setup        func(t *testing.T, target, tmp string)
		wantReplaced links.Occupant
	}{
		{
			name:         "empty_target",
			setup:        func(t *testing.T, target, tmp string) {},
			wantReplaced: links.OccupantNone,
		},
		{
			name: "valid_symlink",
			setup: func(t *testing.T, target, tmp string) {
				other := testutil.CreateFile(t, tmp, "other.md", "other")
				testutil.CreateSymlink(t, other, target)
			},
			wantReplaced: links.OccupantSymlink,
		},
		{
			name: "broken_symlink",
			setup: func(t *testing.T, target, tmp string) {
				testutil.CreateSymlink(t, filepath.Join(tmp, "gone.md"), target)
			},
			wantReplaced: links.OccupantSymlink,
		},
		{
			name: "regular_file",
			setup: func(t *testing.T, target, tmp string) {
				require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))
			},
			wantReplaced: links.OccupantFile,
		},
		{
			name: "non_empty_directory",
			setup: func(t *testing.T, target, tmp string) {
				testutil.CreateFile(t, target, "nested/deep.txt", "stale")
			},
			wantReplaced: links.OccupantDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			source := testutil.CreateFile(t, tmp, "repo/AGENTS.md", "rules")
			targetDir := testutil.CreateDir(t, tmp, "target")
			target := filepath.Join(targetDir, "AGENTS.md")

			tt.setup(t, target, tmp)

			link, err := links.NewManager(nil).Link(source, target)
			require.NoError(t, err)

			assert.Equal(t, tt.wantReplaced, link.Replaced)
			assert.Equal(t, links.FileLink, link.Kind)
			testutil.AssertSymlink(t, target, testutil.RealPath(t, source))
			assert.Equal(t, "rules", testutil.ReadFile(t, target))

			// Exactly one entry at the target, no leftovers next to it
			entries, err := os.ReadDir(targetDir)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestLink_DirectorySourceCarriesNestedContent(t *testing.T) {
	testutil.SkipOnWindows(t)

	tmp := t.TempDir()
	testutil.CreateFile(t, tmp, "repo/command/check.md", "command")
	target := filepath.Join(tmp, "target", "command")

	link, err := links.NewManager(nil).Link(filepath.Join(tmp, "repo", "command"), target)
	require.NoError(t, err)

	assert.Equal(t, links.DirLink, link.Kind)
	assert.Equal(t, "command", testutil.ReadFile(t, filepath.Join(target, "check.md")))
}

func TestLink_CreatesParentDirectories(t *testing.T) {
	tmp := t.TempDir()
	source := testutil.CreateFile(t, tmp, "repo/a.md", "a")
	target := filepath.Join(tmp, "does", "not", "exist", "a.md")

	_, err := links.NewManager(nil).Link(source, target)
	require.NoError(t, err)
	assert.True(t, testutil.SymlinkExists(t, target))
}

func TestLink_CanonicalizesRelativeSource(t *testing.T) {
	tmp := t.TempDir()
	testutil.CreateFile(t, tmp, "repo/a.md", "a")
	target := filepath.Join(tmp, "target", "a.md")

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	link, err := links.NewManager(nil).Link(filepath.Join("repo", ".", "a.md"), target)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(link.Source))
	testutil.AssertSymlink(t, target, testutil.RealPath(t, filepath.Join(tmp, "repo", "a.md")))
}

func TestLink_MissingSource(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "repo", "gone.md")
	target := filepath.Join(tmp, "target", "gone.md")

	_, err := links.NewManager(nil).Link(source, target)
	require.Error(t, err)

	assert.True(t, errors.IsLinkError(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkSourceMissing))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, source, details["source"])
	assert.Equal(t, target, details["target"])
	assert.False(t, testutil.PathExists(t, target))
}

func TestLink_FilesystemFailures(t *testing.T) {
	tests := []struct {
		name     string
		fault    func(target string) filesystem.Fault
		wantCode errors.ErrorCode
	}{
		{
			name: "parent_mkdir_denied",
			fault: func(target string) filesystem.Fault {
				return filesystem.Fault{Op: filesystem.OpMkdirAll, Path: filepath.Dir(target), Err: fs.ErrPermission}
			},
			wantCode: errors.ErrLinkParent,
		},
		{
			name: "remove_denied",
			fault: func(target string) filesystem.Fault {
				return filesystem.Fault{Op: filesystem.OpRemoveAll, Path: target, Err: fs.ErrPermission}
			},
			wantCode: errors.ErrLinkRemove,
		},
		{
			name: "symlink_denied",
			fault: func(target string) filesystem.Fault {
				return filesystem.Fault{Op: filesystem.OpSymlink, Path: target, Err: fs.ErrPermission}
			},
			wantCode: errors.ErrLinkCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			source := testutil.CreateFile(t, tmp, "repo/a.md", "a")
			target := testutil.CreateFile(t, tmp, "target/a.md", "occupied")

			fsys := filesystem.NewFaulty(filesystem.NewOS(), tt.fault(target))
			_, err := links.NewManager(fsys).Link(source, target)

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
			assert.ErrorIs(t, err, fs.ErrPermission)
		})
	}
}

func TestLink_RefusesToRemoveSourceItself(t *testing.T) {
	testutil.SkipOnWindows(t)

	tmp := t.TempDir()
	repo := testutil.CreateDir(t, tmp, "repo")
	source := testutil.CreateFile(t, repo, "a.md", "keep me")

	// The target directory is a link into the repository, so target/a.md
	// is the source file itself.
	targetDir := filepath.Join(tmp, "target")
	testutil.CreateSymlink(t, repo, targetDir)

	_, err := links.NewManager(nil).Link(source, filepath.Join(targetDir, "a.md"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkRemove))
	assert.Equal(t, "keep me", testutil.ReadFile(t, source))
}

func TestIsBroken(t *testing.T) {
	testutil.SkipOnWindows(t)

	tmp := t.TempDir()
	file := testutil.CreateFile(t, tmp, "file.md", "x")
	dir := testutil.CreateDir(t, tmp, "dir")

	valid := filepath.Join(tmp, "valid")
	testutil.CreateSymlink(t, file, valid)

	dangling := filepath.Join(tmp, "dangling")
	testutil.CreateSymlink(t, filepath.Join(tmp, "nowhere"), dangling)

	chain := filepath.Join(tmp, "chain")
	testutil.CreateSymlink(t, dangling, chain)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular_file", file, false},
		{"directory", dir, false},
		{"valid_symlink", valid, false},
		{"dangling_symlink", dangling, true},
		{"link_to_dangling_link", chain, true},
		{"nonexistent_path", filepath.Join(tmp, "absent"), true},
	}

	m := links.NewManager(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsBroken(tt.path))
		})
	}
}

func TestUnlink(t *testing.T) {
	testutil.SkipOnWindows(t)

	tmp := t.TempDir()
	repo := testutil.CreateDir(t, tmp, "repo")
	managedSource := testutil.CreateFile(t, repo, "a.md", "a")
	foreignSource := testutil.CreateFile(t, tmp, "elsewhere/b.md", "b")
	target := testutil.CreateDir(t, tmp, "target")

	managed := filepath.Join(target, "a.md")
	testutil.CreateSymlink(t, managedSource, managed)
	foreign := filepath.Join(target, "b.md")
	testutil.CreateSymlink(t, foreignSource, foreign)
	plain := testutil.CreateFile(t, target, "c.md", "c")

	m := links.NewManager(nil)

	removed, err := m.Unlink(managed, repo)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, testutil.PathExists(t, managed))
	assert.Equal(t, "a", testutil.ReadFile(t, managedSource))

	removed, err = m.Unlink(foreign, repo)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.True(t, testutil.SymlinkExists(t, foreign))

	removed, err = m.Unlink(plain, repo)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = m.Unlink(filepath.Join(target, "absent"), repo)
	require.NoError(t, err)
	assert.False(t, removed)
}
