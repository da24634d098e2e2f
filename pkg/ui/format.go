package ui

import (
	"io"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/muesli/termenv"
)

// Format selects how reports, statuses and errors are written. The zero
// value is FormatAuto. *Format satisfies pflag.Value, so it can back the
// --format flag directly.
type Format int

const (
	FormatAuto Format = iota
	// FormatTerminal: styled output for a color terminal
	FormatTerminal
	FormatText
	FormatJSON
	FormatYAML
)

var formatNames = [...]string{"auto", "term", "text", "json", "yaml"}

// formatSpellings maps every accepted spelling to its format.
var formatSpellings = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Set parses s into f.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *Format) Type() string {
	return "format"
}

// FormatNames lists the canonical name of every format, for completion
// and error details.
func FormatNames() []string {
	return append([]string(nil), formatNames[:]...)
}

// ParseFormat accepts a format name or alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatSpellings[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("valid", strings.Join(FormatNames(), ", "))
}

// Resolve turns FormatAuto into a concrete format for w: FormatTerminal when
// w is a terminal with color, FormatText otherwise. NO_COLOR and CLICOLOR
// are honored. Other formats are returned as is.
func (f Format) Resolve(w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
