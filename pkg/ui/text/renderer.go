// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/installer"
	"github.com/arthur-debert/agentlink/pkg/style"
	"github.com/arthur-debert/agentlink/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *installer.Report:
		return r.renderView(display.FromReport(v))
	case []installer.EntryStatus:
		return r.renderView(display.FromStatus(v))
	case display.View:
		return r.renderView(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderView(v display.View) error {
	var b strings.Builder
	b.WriteString(v.Title + "\n")
	for _, s := range v.Sections {
		fmt.Fprintf(&b, "\n%s:\n", s.Heading)
		for _, row := range s.Rows {
			line := fmt.Sprintf("  %-10s %s", row.Label, row.Name)
			if row.Detail != "" {
				line += "  (" + row.Detail + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	fmt.Fprintf(&b, "\n%s\n", v.Summary)
	if v.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", v.Error)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	v := display.FromError(err)
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", v.Error)
	for _, line := range v.DetailLines() {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Plain(msg))
	return err
}
