package links

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// SweepPolicy selects which broken links a sweep may delete.
type SweepPolicy int

const (
	// SweepAll removes every broken symlink directly under the directory,
	// including ones agentlink did not create.
	SweepAll SweepPolicy = iota
	// SweepManaged removes only broken symlinks pointing under the source root.
	SweepManaged
	// SweepNone disables the sweep.
	SweepNone
)

func (p SweepPolicy) String() string {
	switch p {
	case SweepManaged:
		return "managed"
	case SweepNone:
		return "none"
	default:
		return "all"
	}
}

// ParseSweepPolicy parses the config spelling of a policy.
func ParseSweepPolicy(s string) (SweepPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SweepAll, nil
	case "managed":
		return SweepManaged, nil
	case "none", "off":
		return SweepNone, nil
	default:
		return SweepAll, fmt.Errorf("unknown sweep policy: %q", s)
	}
}

// SweepOptions controls a Sweep.
type SweepOptions struct {
	Policy SweepPolicy
	// Root is the source root; required by SweepManaged.
	Root string
	// Keep lists entry names that are never removed.
	Keep []string
	// DryRun reports what would be removed without removing it.
	DryRun bool
}

// Sweep deletes broken symlinks that are direct children of dir and returns
// the names it removed. Entries that are not symlinks are never touched. A
// missing dir has nothing to sweep.
func (m *Manager) Sweep(dir string, opts SweepOptions) ([]string, error) {
	logger := logging.GetLogger("links")
	if opts.Policy == SweepNone {
		return nil, nil
	}

	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrSweepFailed, "failed to read %s", dir).
			WithDetail("dir", dir)
	}

	keep := make(map[string]bool, len(opts.Keep))
	for _, name := range opts.Keep {
		keep[name] = true
	}

	var removed []string
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink == 0 || keep[entry.Name()] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !m.IsBroken(path) {
			continue
		}

		if opts.Policy == SweepManaged {
			dest, err := m.fs.Readlink(path)
			if err != nil || !m.isUnder(absLinkTarget(path, dest), opts.Root) {
				logger.Debug().Str("path", path).Msg("Leaving unmanaged broken symlink")
				continue
			}
		}

		if !opts.DryRun {
			if err := m.fs.Remove(path); err != nil {
				return removed, errors.Wrapf(err, errors.ErrSweepFailed, "failed to remove broken symlink %s", path).
					WithDetail("path", path)
			}
			logger.Info().Str("path", path).Msg("Removed broken symlink")
		}
		removed = append(removed, entry.Name())
	}

	return removed, nil
}
