package links

import (
	stderrors "errors"
	"io/fs"
)

// State is the observed state of a target path.
type State int

const (
	StateMissing State = iota
	// StateLinked: a symlink resolving to the expected source.
	StateLinked
	// StateBroken: a symlink that does not resolve.
	StateBroken
	// StateForeign: a working symlink to somewhere else.
	StateForeign
	// StateConflict: a regular file or directory.
	StateConflict
	// StateError: the target could not be inspected.
	StateError
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateLinked:
		return "linked"
	case StateBroken:
		return "broken"
	case StateForeign:
		return "foreign"
	case StateConflict:
		return "conflict"
	default:
		return "error"
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Inspect classifies target against the source it is expected to point at.
// A working link is linked only when it resolves to source itself. When
// source does not exist (or is empty) every working link is foreign.
func (m *Manager) Inspect(target, source string) State {
	info, err := m.fs.Lstat(target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return StateMissing
		}
		return StateError
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return StateConflict
	}

	resolved, err := m.fs.EvalSymlinks(target)
	if err != nil {
		return StateBroken
	}
	if source == "" {
		return StateForeign
	}

	want, err := m.canonical(source)
	if err != nil || resolved != want {
		return StateForeign
	}
	return StateLinked
}
