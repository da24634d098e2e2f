package assets

import (
	"bytes"
	stderrors "errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/source"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Manifest is a static asset table, the alternative to enumerating the
// source subfolder.
//
//	[[asset]]
//	source = "agents/opencode/opencode.jsonc"
//	target = "opencode.json"
//	type = "file"
//
//	[[merge]]
//	source = "claude/.mcp.json"
//	key = "mcpServers"
//	into = "~/.claude.json"
type Manifest struct {
	Assets []ManifestAsset `toml:"asset" yaml:"asset"`
	Merges []Merge         `toml:"merge" yaml:"merge"`
}

// ManifestAsset is the on-disk form of an Asset.
type ManifestAsset struct {
	Source string `toml:"source" yaml:"source"`
	Target string `toml:"target" yaml:"target"`
	Type   string `toml:"type" yaml:"type"`
}

// Merge copies one top-level JSON key from a source file into a user JSON
// file after linking.
type Merge struct {
	Source string `toml:"source" yaml:"source"`
	Key    string `toml:"key" yaml:"key"`
	Into   string `toml:"into" yaml:"into"`
}

// LoadManifest reads a manifest, choosing the decoder by extension
// (.yaml/.yml, otherwise TOML). Unknown fields are rejected.
func LoadManifest(fsys filesystem.FS, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest %s", path)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every entry stays inside the source root, that
// target names are flat and unique, and that types are known.
func (m *Manifest) Validate() error {
	seen := make(map[string]string)
	for i, a := range m.Assets {
		if reason := checkRelative(a.Source); reason != "" {
			return invalid(i, "source", a.Source, reason)
		}
		if a.Target == "" || a.Target == "." || a.Target == ".." || strings.ContainsAny(a.Target, `/\`) {
			return invalid(i, "target", a.Target, "must be a plain entry name")
		}
		if _, ok := source.ParseKind(a.Type); !ok {
			return invalid(i, "type", a.Type, "must be file, dir or any")
		}
		if prev, dup := seen[a.Target]; dup {
			return invalid(i, "target", a.Target, "already used by "+prev)
		}
		seen[a.Target] = a.Source
	}

	for i, mg := range m.Merges {
		if reason := checkRelative(mg.Source); reason != "" {
			return errors.Newf(errors.ErrManifestInvalid, "merge %d: source %q %s", i, mg.Source, reason)
		}
		if mg.Key == "" {
			return errors.Newf(errors.ErrManifestInvalid, "merge %d: key is required", i)
		}
		if mg.Into == "" {
			return errors.Newf(errors.ErrManifestInvalid, "merge %d: into is required", i)
		}
	}
	return nil
}

// AssetList converts the manifest entries to Assets, in file order.
func (m *Manifest) AssetList() []Asset {
	list := make([]Asset, 0, len(m.Assets))
	for _, a := range m.Assets {
		kind, _ := source.ParseKind(a.Type)
		list = append(list, Asset{
			SourceRelativePath: filepath.FromSlash(a.Source),
			TargetName:         a.Target,
			Kind:               kind,
		})
	}
	return list
}

// checkRelative returns why p is not a usable source path, or "".
func checkRelative(p string) string {
	if p == "" {
		return "is required"
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return "must be relative to the source root"
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "must not leave the source root"
	}
	return ""
}

func invalid(i int, field, value, reason string) error {
	return errors.Newf(errors.ErrManifestInvalid, "asset %d: %s %q %s", i, field, value, reason).
		WithDetail("index", i).
		WithDetail("field", field)
}
