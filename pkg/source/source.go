// Package source validates that a relative path exists under a source root
// and has the expected kind.
//
// A miss is not an error: Resolve reports it through Resolution.Status so
// callers can skip the asset. That covers paths that do not exist and paths
// the user may not read. Any other stat failure comes back as an error.
package source

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Kind is the expected or actual kind of a source path.
type Kind int

const (
	// KindAny accepts files and directories.
	KindAny Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "any"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind maps manifest spellings to a Kind. The empty string is KindAny.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "any", "either":
		return KindAny, true
	case "file":
		return KindFile, true
	case "dir", "directory":
		return KindDirectory, true
	default:
		return KindAny, false
	}
}

// Status is the outcome of a resolution.
type Status int

const (
	Found Status = iota
	Missing
	WrongKind
	// Inaccessible: stat was denied permission.
	Inaccessible
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Missing:
		return "missing"
	case WrongKind:
		return "wrong-kind"
	case Inaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Resolution describes a resolved (or rejected) source path.
type Resolution struct {
	// Path is the absolute path. Set only when Status is Found.
	Path     string
	Relative string
	Status   Status
	// Actual is the kind found on disk. KindAny when Missing or Inaccessible.
	Actual Kind
}

// OK reports whether the path exists and matched the expected kind.
func (r Resolution) OK() bool {
	return r.Status == Found
}

// Resolver validates source paths against a filesystem.
type Resolver struct {
	fs filesystem.FS
}

// NewResolver creates a Resolver. A nil fs uses the OS filesystem.
func NewResolver(fsys filesystem.FS) *Resolver {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Resolver{fs: fsys}
}

// Resolve stats root/rel and checks it against expected.
func (r *Resolver) Resolve(root, rel string, expected Kind) (Resolution, error) {
	logger := logging.GetLogger("source")
	res := Resolution{Relative: rel}

	full, err := filepath.Abs(filepath.Join(root, rel))
	if err != nil {
		return res, err
	}

	info, err := r.fs.Stat(full)
	if err != nil {
		if isNotExist(err) {
			logger.Warn().Str("path", rel).Msg("not found in repository, skipping")
			res.Status = Missing
			return res, nil
		}
		if stderrors.Is(err, fs.ErrPermission) {
			logger.Warn().Err(err).Str("path", rel).Msg("not accessible, skipping")
			res.Status = Inaccessible
			return res, nil
		}
		return res, err
	}

	res.Actual = KindFile
	if info.IsDir() {
		res.Actual = KindDirectory
	}

	if expected != KindAny && expected != res.Actual {
		logger.Warn().
			Str("path", rel).
			Str("expected", expected.String()).
			Str("actual", res.Actual.String()).
			Msg("unexpected kind, skipping")
		res.Status = WrongKind
		return res, nil
	}

	res.Path = full
	res.Status = Found
	return res, nil
}

// isNotExist treats ENOTDIR (a path component is a file) as absence too.
func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}
