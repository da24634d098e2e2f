package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// LabelWidth pads labels so that rows line up.
const LabelWidth = 10

// LabelStyle returns the pterm style for a row label. Labels are asset
// actions (linked, create, failed) or target states (linked, broken).
func LabelStyle(label string) *pterm.Style {
	switch label {
	case "linked", "create", "merged":
		return pterm.NewStyle(pterm.FgGreen)
	case "skipped", "left", "foreign", "conflict":
		return pterm.NewStyle(pterm.FgYellow)
	case "failed", "broken", "error":
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case "replace", "removed", "swept":
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Label pads and colors label for a terminal row.
func Label(label string) string {
	return LabelStyle(label).Sprint(fmt.Sprintf("%-*s", LabelWidth, label))
}
