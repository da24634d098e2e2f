// Package jsonmerge copies one top-level key from a JSON file into another
// JSON file, leaving the rest of the destination untouched.
package jsonmerge

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Outcome is what a merge did.
type Outcome int

const (
	// Merged means the destination now carries the key.
	Merged Outcome = iota
	// SkippedNoSource means the source file does not exist. Not an error.
	SkippedNoSource
)

func (o Outcome) String() string {
	switch o {
	case Merged:
		return "merged"
	case SkippedNoSource:
		return "skipped"
	default:
		return "unknown"
	}
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Merge sets key in the JSON object at into to the value of key in the
// JSON object at source. A missing destination starts as {}. The
// destination is replaced through a temp file and rename in the same
// directory, so readers never see a partial write.
func Merge(fsys filesystem.FS, source, key, into string) (Outcome, error) {
	logger := logging.GetLogger("jsonmerge").With().
		Str("source", source).Str("key", key).Str("into", into).Logger()

	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	src, err := fsys.ReadFile(source)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Warn().Msg("Merge source not found, skipping")
			return SkippedNoSource, nil
		}
		return 0, mergeError(err, source, key, into, "failed to read source")
	}
	if !gjson.ValidBytes(src) {
		return 0, mergeError(nil, source, key, into, "source is not valid JSON")
	}

	path := escapePath(key)
	value := gjson.GetBytes(src, path)
	if !value.Exists() {
		return 0, mergeError(nil, source, key, into, fmt.Sprintf("key %q not found in source", key))
	}

	dst, err := fsys.ReadFile(into)
	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist):
		dst = nil
	default:
		return 0, mergeError(err, source, key, into, "failed to read destination")
	}
	if len(bytes.TrimSpace(dst)) == 0 {
		dst = []byte("{}")
	}
	if !gjson.ValidBytes(dst) || !gjson.ParseBytes(dst).IsObject() {
		return 0, mergeError(nil, source, key, into, "destination is not a JSON object")
	}

	out, err := sjson.SetRawBytes(dst, path, []byte(value.Raw))
	if err != nil {
		return 0, mergeError(err, source, key, into, "failed to set key")
	}
	out = pretty.PrettyOptions(out, prettyOptions)

	if err := writeAtomic(fsys, into, out); err != nil {
		return 0, mergeError(err, source, key, into, "failed to write destination")
	}

	logger.Info().Msg("Merged JSON key")
	return Merged, nil
}

func writeAtomic(fsys filesystem.FS, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// escapePath makes key a single gjson/sjson path component.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func mergeError(err error, source, key, into, msg string) error {
	var e *errors.Error
	if err != nil {
		e = errors.Wrapf(err, errors.ErrMergeFailed, "%s: %s", msg, into)
	} else {
		e = errors.Newf(errors.ErrMergeFailed, "%s: %s", msg, source)
	}
	return e.WithDetail("source", source).WithDetail("key", key).WithDetail("into", into)
}
