// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/installer"
	"github.com/arthur-debert/agentlink/pkg/style"
	"github.com/arthur-debert/agentlink/pkg/ui/display"
)

// Renderer provides rich terminal output using lipgloss and pterm styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders any result type with rich terminal formatting
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
	b.WriteString(style.TitleStyle.Render(v.Title) + "\n")
	for _, s := range v.Sections {
		b.WriteString("\n" + style.Render("[bold]"+s.Heading+"[/bold]") + "\n")
		for _, row := range s.Rows {
			line := "  " + style.Label(row.Label) + " " + style.LinkStyle.Render(row.Name)
			if row.Detail != "" {
				line += "  " + style.MutedStyle.Render(row.Detail)
			}
			b.WriteString(line + "\n")
		}
	}

	indicator := style.SuccessIndicator
	if v.Error != "" {
		indicator = style.ErrorIndicator
	}
	fmt.Fprintf(&b, "\n%s %s\n", indicator, v.Summary)
	if v.Error != "" {
		b.WriteString(style.ErrorStyle.Render(v.Error) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error in a box, with its details below the message
func (r *Renderer) RenderError(err error) error {
	v := display.FromError(err)
	lines := []string{style.ErrorStyle.Render("Error") + " " + v.Error}
	for _, line := range v.DetailLines() {
		lines = append(lines, style.PathStyle.Render(line))
	}
	_, werr := fmt.Fprintln(r.output, style.BoxStyle.Render(strings.Join(lines, "\n")))
	return werr
}

// RenderMessage renders a simple message. Markup tags such as [path] are
// styled.
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", style.InfoIndicator, style.Render(msg))
	return err
}
