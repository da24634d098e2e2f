package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# agentlink configuration
# Generated by "agentlink config init". Remove any key to fall back to the
# built-in default. Environment variables (AGENTLINK_*) still take priority.

`

// DefaultsContent returns the embedded defaults file, comments included.
func DefaultsContent() string {
	return string(defaultConfig)
}

// GenerateConfigContent renders cfg as a TOML config file.
func GenerateConfigContent(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetArraysMultiline(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// WriteConfigFile writes cfg to path, creating parent directories. An
// existing file is only replaced when force is set.
func WriteConfigFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Newf(errors.ErrInvalidInput, "config file already exists: %s", path).
				WithDetail("path", path)
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path)
		}
	}

	content, err := GenerateConfigContent(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", path)
	}
	return nil
}
