package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/agentlink/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvConfigHome and EnvStateHome are read at call time so that a
	// changed environment wins over the values xdg cached at startup.
	EnvConfigHome = "XDG_CONFIG_HOME"
	EnvStateHome  = "XDG_STATE_HOME"
)

// Fixed names. These are not user-configurable.
const (
	// AppDirName is the directory name under the XDG config and state homes
	AppDirName = "agentlink"

	// DefaultTargetName is the only supported named target
	DefaultTargetName = "opencode"

	// RepoConfigFile is read from the Source Root when present
	RepoConfigFile = ".agentlink.toml"

	// UserConfigFile is the name of the per-user config file
	UserConfigFile = "config.toml"

	// LockFileName is the advisory lock taken around an install
	LockFileName = "install.lock"

	// LogFileName is the name of the log file
	LogFileName = "agentlink.log"
)

// Paths holds the resolved locations for one run.
type Paths struct {
	sourceRoot string
	targetDir  string
}

// New resolves sourceRoot and targetDir to absolute paths. An empty
// sourceRoot means the current directory; an empty targetDir means the
// default opencode config directory under $HOME. A leading ~ is expanded.
func New(sourceRoot, targetDir string) (*Paths, error) {
	if sourceRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to get current directory")
		}
		sourceRoot = cwd
	}

	if targetDir == "" {
		def, err := DefaultTargetDir()
		if err != nil {
			return nil, err
		}
		targetDir = def
	}

	p := &Paths{}
	var err error
	if p.sourceRoot, err = filepath.Abs(ExpandHome(sourceRoot)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid source root %q", sourceRoot)
	}
	if p.targetDir, err = filepath.Abs(ExpandHome(targetDir)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid target directory %q", targetDir)
	}
	return p, nil
}

// SourceRoot returns the absolute Source Root
func (p *Paths) SourceRoot() string {
	return p.sourceRoot
}

// TargetDir returns the absolute Target Directory
func (p *Paths) TargetDir() string {
	return p.targetDir
}

// RepoConfigPath returns the repository-level config file path
func (p *Paths) RepoConfigPath() string {
	return filepath.Join(p.sourceRoot, RepoConfigFile)
}

// Resolve makes a path taken from configuration absolute. Relative paths
// are relative to the Source Root.
func (p *Paths) Resolve(path string) string {
	if path == "" {
		return ""
	}
	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.sourceRoot, path)
}

// ConfigDir returns $XDG_CONFIG_HOME/agentlink
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns $XDG_STATE_HOME/agentlink
func StateDir() string {
	if dir := os.Getenv(EnvStateHome); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// UserConfigPath returns the per-user config file path
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// LockPath returns the install lock path
func LockPath() string {
	return filepath.Join(StateDir(), LockFileName)
}

// LogFilePath returns the path to the agentlink log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// DefaultTargetDir returns $HOME/.config/opencode
func DefaultTargetDir() (string, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", DefaultTargetName), nil
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrap(err, errors.ErrInternal, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ or ~/ to the home directory. ~user forms
// and paths where the home directory cannot be found are returned as-is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
