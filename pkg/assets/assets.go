// Package assets describes what agentlink installs: one Asset per entry of
// the source subfolder, or the entries of a static manifest.
package assets

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/source"
)

// DefaultSourceDir is the subfolder of the source root enumerated when no
// manifest is configured.
const DefaultSourceDir = "opencode"

// Asset is one file or directory to link into the target directory.
type Asset struct {
	// SourceRelativePath is relative to the source root.
	SourceRelativePath string `json:"source" yaml:"source"`
	// TargetName is the entry name created directly under the target directory.
	TargetName string      `json:"target" yaml:"target"`
	Kind       source.Kind `json:"kind" yaml:"kind"`
}

func (a Asset) String() string {
	return fmt.Sprintf("%s -> %s (%s)", a.SourceRelativePath, a.TargetName, a.Kind)
}

// Enumerate lists the direct entries of root/dir as assets, in name order.
// Kind is left as KindAny. A missing dir is a structural install error.
func Enumerate(fsys filesystem.FS, root, dir string) ([]Asset, error) {
	full := filepath.Join(root, dir)

	info, err := fsys.Stat(full)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Newf(errors.ErrInstallSourceDirMissing, "source directory not found: %s", full).
				WithDetail("path", full)
		}
		return nil, errors.Wrapf(err, errors.ErrInstallEnumerate, "failed to stat %s", full)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInstallSourceDirMissing, "source path is not a directory: %s", full).
			WithDetail("path", full)
	}

	entries, err := fsys.ReadDir(full)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInstallEnumerate, "failed to list %s", full)
	}

	list := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		list = append(list, Asset{
			SourceRelativePath: filepath.Join(dir, entry.Name()),
			TargetName:         entry.Name(),
			Kind:               source.KindAny,
		})
	}
	return list, nil
}
