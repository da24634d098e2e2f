// pkg/ui/format_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment, temp file
// PURPOSE: Test output format parsing, flag binding and auto resolution

package ui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.FormatYAML, "yaml"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"auto", ui.FormatAuto, false},
		{"", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"TERM", ui.FormatTerminal, false},
		{"text", ui.FormatText, false},
		{"plain", ui.FormatText, false},
		{" Json ", ui.FormatJSON, false},
		{"yaml", ui.FormatYAML, false},
		{"yml", ui.FormatYAML, false},
		{"invalid", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run("parse_"+tt.input, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				assert.Contains(t, err.Error(), "unknown format")
				assert.Equal(t, "auto, term, text, json, yaml", errors.GetErrorDetails(err)["valid"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormatFlagValue(t *testing.T) {
	var f ui.Format
	assert.Equal(t, "format", f.Type())
	assert.Equal(t, "auto", f.String())

	require.NoError(t, f.Set("yml"))
	assert.Equal(t, ui.FormatYAML, f)

	// A rejected value leaves the previous one in place
	require.Error(t, f.Set("xml"))
	assert.Equal(t, ui.FormatYAML, f)

	names := ui.FormatNames()
	names[0] = "changed"
	assert.Equal(t, "auto", ui.FormatNames()[0])
}

func TestFormatResolve(t *testing.T) {
	t.Run("explicit_formats_are_kept", func(t *testing.T) {
		for _, f := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
			assert.Equal(t, f, f.Resolve(&bytes.Buffer{}), f.String())
		}
	})

	t.Run("no_color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(os.Stdout))
	})

	t.Run("buffer_is_not_a_terminal", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("CLICOLOR_FORCE", "")
		assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(&bytes.Buffer{}))
	})

	t.Run("regular_file_is_not_a_terminal", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("CLICOLOR_FORCE", "")
		f, err := os.Create(filepath.Join(t.TempDir(), "out"))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(f))
	})
}
