// pkg/assets/assets_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test asset enumeration and manifest loading/validation

package assets_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/assets"
	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/source"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "opencode/AGENTS.md", "rules")
	testutil.CreateFile(t, root, "opencode/command/check.md", "command")
	testutil.CreateFile(t, root, "opencode/.hidden", "dot")
	testutil.CreateFile(t, root, "elsewhere.md", "not an asset")

	list, err := assets.Enumerate(filesystem.NewOS(), root, "opencode")
	require.NoError(t, err)

	want := []assets.Asset{
		{SourceRelativePath: filepath.Join("opencode", ".hidden"), TargetName: ".hidden", Kind: source.KindAny},
		{SourceRelativePath: filepath.Join("opencode", "AGENTS.md"), TargetName: "AGENTS.md", Kind: source.KindAny},
		{SourceRelativePath: filepath.Join("opencode", "command"), TargetName: "command", Kind: source.KindAny},
	}
	assert.Equal(t, want, list)
}

func TestEnumerate_EmptyDir(t *testing.T) {
	root := t.TempDir()
	testutil.CreateDir(t, root, "opencode")

	list, err := assets.Enumerate(filesystem.NewOS(), root, "opencode")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnumerate_MissingDirIsInstallError(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string)
	}{
		{"absent", func(t *testing.T, root string) {}},
		{"file_not_dir", func(t *testing.T, root string) { testutil.CreateFile(t, root, "opencode", "x") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)

			_, err := assets.Enumerate(filesystem.NewOS(), root, "opencode")
			require.Error(t, err)
			assert.True(t, errors.IsInstallError(err))
			assert.True(t, errors.IsErrorCode(err, errors.ErrInstallSourceDirMissing))
		})
	}
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "agentlink.toml",
			content: `
[[asset]]
source = "agents/opencode/opencode.jsonc"
target = "opencode.json"
type = "file"

[[asset]]
source = "agents/rules/AGENTS.md"
target = "AGENTS.md"

[[asset]]
source = "agents/command"
target = "command"
type = "dir"

[[merge]]
source = "claude/.mcp.json"
key = "mcpServers"
into = "~/.claude.json"
`,
		},
		{
			name: "yaml",
			file: "agentlink.yaml",
			content: `
asset:
  - source: agents/opencode/opencode.jsonc
    target: opencode.json
    type: file
  - source: agents/rules/AGENTS.md
    target: AGENTS.md
  - source: agents/command
    target: command
    type: dir
merge:
  - source: claude/.mcp.json
    key: mcpServers
    into: ~/.claude.json
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, t.TempDir(), tt.file, tt.content)

			m, err := assets.LoadManifest(filesystem.NewOS(), path)
			require.NoError(t, err)

			list := m.AssetList()
			require.Len(t, list, 3)
			assert.Equal(t, assets.Asset{
				SourceRelativePath: filepath.FromSlash("agents/opencode/opencode.jsonc"),
				TargetName:         "opencode.json",
				Kind:               source.KindFile,
			}, list[0])
			assert.Equal(t, source.KindAny, list[1].Kind)
			assert.Equal(t, source.KindDirectory, list[2].Kind)

			require.Len(t, m.Merges, 1)
			assert.Equal(t, assets.Merge{Source: "claude/.mcp.json", Key: "mcpServers", Into: "~/.claude.json"}, m.Merges[0])
		})
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.ErrorCode
	}{
		{"unknown_field", "m.toml", "[[asset]]\nsource = \"a\"\ntarget = \"a\"\nmode = \"x\"\n", errors.ErrManifestParse},
		{"bad_toml", "m.toml", "[[asset]\n", errors.ErrManifestParse},
		{"unknown_yaml_field", "m.yaml", "asset:\n  - source: a\n    target: a\n    mode: x\n", errors.ErrManifestParse},
		{"escaping_source", "m.toml", "[[asset]]\nsource = \"../secrets\"\ntarget = \"s\"\n", errors.ErrManifestInvalid},
		{"absolute_source", "m.toml", "[[asset]]\nsource = \"/etc/passwd\"\ntarget = \"p\"\n", errors.ErrManifestInvalid},
		{"nested_target", "m.toml", "[[asset]]\nsource = \"a\"\ntarget = \"x/a\"\n", errors.ErrManifestInvalid},
		{"bad_type", "m.toml", "[[asset]]\nsource = \"a\"\ntarget = \"a\"\ntype = \"fifo\"\n", errors.ErrManifestInvalid},
		{"duplicate_target", "m.toml", "[[asset]]\nsource = \"a\"\ntarget = \"x\"\n[[asset]]\nsource = \"b\"\ntarget = \"x\"\n", errors.ErrManifestInvalid},
		{"merge_without_key", "m.toml", "[[merge]]\nsource = \"a.json\"\ninto = \"b.json\"\n", errors.ErrManifestInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, t.TempDir(), tt.file, tt.content)

			_, err := assets.LoadManifest(filesystem.NewOS(), path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := assets.LoadManifest(filesystem.NewOS(), filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}
