// Package display turns installer results into the rows shared by the text
// and terminal renderers.
package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/installer"
	"github.com/arthur-debert/agentlink/pkg/links"
)

// Row is one line of output: a label (action or state), the entry name and
// an optional detail.
type Row struct {
	Label  string
	Name   string
	Detail string
}

// Section is a headed group of rows.
type Section struct {
	Heading string
	Rows    []Row
}

// View is a renderer-neutral rendition of a result.
type View struct {
	Title    string
	Sections []Section
	Summary  string
	// Error is the fatal or summary error of the run, if any
	Error string
}

// FromReport builds the view of an install, plan or uninstall report.
func FromReport(r *installer.Report) View {
	v := View{Title: fmt.Sprintf("%s %s -> %s", r.Command, r.SourceRoot, r.TargetDir)}
	if r.DryRun {
		v.Title += " (dry run)"
	}

	if len(r.Assets) > 0 {
		s := Section{Heading: "Assets"}
		for _, a := range r.Assets {
			detail := a.Reason
			if a.Error != "" {
				detail = a.Error
			}
			s.Rows = append(s.Rows, Row{Label: string(a.Action), Name: a.Asset.TargetName, Detail: detail})
		}
		v.Sections = append(v.Sections, s)
	}

	if len(r.Swept) > 0 {
		s := Section{Heading: "Swept"}
		for _, name := range r.Swept {
			s.Rows = append(s.Rows, Row{Label: "swept", Name: name, Detail: "broken link"})
		}
		v.Sections = append(v.Sections, s)
	}

	if len(r.Merges) > 0 {
		s := Section{Heading: "Merges"}
		for _, m := range r.Merges {
			detail := "key " + m.Key
			if m.Error != "" {
				detail = m.Error
			}
			s.Rows = append(s.Rows, Row{Label: m.Outcome, Name: m.Into, Detail: detail})
		}
		v.Sections = append(v.Sections, s)
	}

	v.Summary = summarize(r)
	v.Error = r.Error
	return v
}

// summarize counts each action present, in a fixed order.
func summarize(r *installer.Report) string {
	order := []installer.Action{
		installer.ActionLinked, installer.ActionCreate, installer.ActionReplace,
		installer.ActionUnchanged, installer.ActionRemoved, installer.ActionLeft,
		installer.ActionSkipped, installer.ActionFailed,
	}
	var parts []string
	for _, action := range order {
		if n := r.Count(action); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, action))
		}
	}
	if len(r.Swept) > 0 {
		parts = append(parts, fmt.Sprintf("%d swept", len(r.Swept)))
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// FromStatus builds the view of a status listing.
func FromStatus(entries []installer.EntryStatus) View {
	v := View{Title: "status"}
	s := Section{Heading: "Entries"}
	broken := 0
	for _, e := range entries {
		row := Row{Label: e.State.String(), Name: e.Name}
		switch {
		case !e.Asset:
			row.Detail = "not managed"
		case e.SourceState != "" && e.SourceState != "found":
			row.Detail = "source " + e.SourceState
		default:
			row.Detail = e.Source
		}
		if e.State == links.StateBroken {
			broken++
		}
		s.Rows = append(s.Rows, row)
	}
	if len(s.Rows) > 0 {
		v.Sections = append(v.Sections, s)
	}
	v.Summary = fmt.Sprintf("%d entries, %d broken", len(entries), broken)
	return v
}
