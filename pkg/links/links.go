// Package links creates, inspects and cleans up the symbolic links that
// agentlink installs into a target directory.
package links

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Kind is the kind of link created, taken from the source.
type Kind int

const (
	FileLink Kind = iota
	DirLink
)

func (k Kind) String() string {
	if k == DirLink {
		return "dir"
	}
	return "file"
}

// Occupant describes what was at a target path before it was replaced.
type Occupant int

const (
	OccupantNone Occupant = iota
	OccupantSymlink
	OccupantFile
	OccupantDirectory
)

func (o Occupant) String() string {
	switch o {
	case OccupantSymlink:
		return "symlink"
	case OccupantFile:
		return "file"
	case OccupantDirectory:
		return "directory"
	default:
		return "none"
	}
}

// Link is the result of a successful Link call.
type Link struct {
	// Source is the canonical absolute path the link points at.
	Source   string
	Target   string
	Kind     Kind
	Replaced Occupant
}

// Manager performs link operations against a filesystem.
type Manager struct {
	fs filesystem.FS
}

// NewManager creates a Manager. A nil fs uses the OS filesystem.
func NewManager(fsys filesystem.FS) *Manager {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Manager{fs: fsys}
}

// Link makes target a fresh symlink to source, removing whatever occupied
// target first. The source is checked again here rather than trusting an
// earlier validation. Failures leave no rollback: target may already be gone.
func (m *Manager) Link(source, target string) (*Link, error) {
	logger := logging.GetLogger("links")

	info, err := m.fs.Stat(source)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, linkError(err, errors.ErrLinkSourceMissing, "source does not exist", source, target)
		}
		return nil, linkError(err, errors.ErrLinkCreate, "failed to stat source", source, target)
	}

	canonical, err := m.canonical(source)
	if err != nil {
		return nil, linkError(err, errors.ErrLinkCreate, "failed to resolve source", source, target)
	}

	if err := m.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, linkError(err, errors.ErrLinkParent, "failed to create parent directory", source, target)
	}

	replaced, err := m.clear(canonical, target)
	if err != nil {
		return nil, linkError(err, errors.ErrLinkRemove, "failed to remove existing target", source, target)
	}

	kind := FileLink
	if info.IsDir() {
		kind = DirLink
	}

	if err := m.fs.Symlink(canonical, target); err != nil {
		return nil, linkError(err, errors.ErrLinkCreate, "failed to create symlink", source, target)
	}

	logger.Info().
		Str("source", canonical).
		Str("target", target).
		Str("kind", kind.String()).
		Str("replaced", replaced.String()).
		Msg("Linked")

	return &Link{Source: canonical, Target: target, Kind: kind, Replaced: replaced}, nil
}

// clear removes whatever is at target. A non-link occupant that is the
// source itself is refused, since removing it would delete the source.
func (m *Manager) clear(canonicalSource, target string) (Occupant, error) {
	info, err := m.fs.Lstat(target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return OccupantNone, nil
		}
		return OccupantNone, err
	}

	occupant := OccupantFile
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		occupant = OccupantSymlink
	case info.IsDir():
		occupant = OccupantDirectory
	}

	if occupant != OccupantSymlink {
		if resolved, err := m.fs.EvalSymlinks(target); err == nil && resolved == canonicalSource {
			return occupant, errors.Newf(errors.ErrLinkRemove, "target %s is the source itself", target)
		}
	}

	if err := m.fs.RemoveAll(target); err != nil {
		return occupant, err
	}
	return occupant, nil
}

// IsBroken reports whether path is unusable as a link. A path that does not
// exist counts as broken so cleanup code can use one check for both cases.
// Plain files and directories are never broken.
func (m *Manager) IsBroken(path string) bool {
	info, err := m.fs.Lstat(path)
	if err != nil {
		return stderrors.Is(err, fs.ErrNotExist)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	_, err = m.fs.Stat(path)
	return err != nil
}

// Unlink removes target if it is a symlink pointing under root. Anything
// else is left alone and reported as not removed.
func (m *Manager) Unlink(target, root string) (bool, error) {
	info, err := m.fs.Lstat(target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return false, nil
	}

	dest, err := m.fs.Readlink(target)
	if err != nil {
		return false, err
	}
	if !m.isUnder(absLinkTarget(target, dest), root) {
		return false, nil
	}

	if err := m.fs.Remove(target); err != nil {
		return false, err
	}
	logger := logging.GetLogger("links")
	logger.Info().Str("target", target).Msg("Unlinked")
	return true, nil
}

func (m *Manager) canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return m.fs.EvalSymlinks(abs)
}

// isUnder compares against root both as given and with links resolved,
// since a dangling link target cannot itself be resolved.
func (m *Manager) isUnder(path, root string) bool {
	if root == "" {
		return false
	}
	roots := []string{filepath.Clean(root)}
	if resolved, err := m.canonical(root); err == nil && resolved != roots[0] {
		roots = append(roots, resolved)
	}
	for _, r := range roots {
		rel, err := filepath.Rel(r, path)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

func absLinkTarget(link, dest string) string {
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}
	return filepath.Join(filepath.Dir(link), dest)
}

func linkError(err error, code errors.ErrorCode, msg, source, target string) *errors.Error {
	return errors.Wrapf(err, code, "%s: %s -> %s", msg, target, source).
		WithDetail("source", source).
		WithDetail("target", target)
}
