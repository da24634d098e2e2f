package installer

import (
	"time"

	"github.com/arthur-debert/agentlink/pkg/assets"
	"github.com/arthur-debert/agentlink/pkg/links"
)

// Phase is a step of the install state machine. Phases only move forward:
// Idle, AssetsEnumerated, AssetsLinked, SweepComplete, Done. A fatal error
// jumps straight to Done.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAssetsEnumerated
	PhaseAssetsLinked
	PhaseSweepComplete
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAssetsEnumerated:
		return "assets-enumerated"
	case PhaseAssetsLinked:
		return "assets-linked"
	case PhaseSweepComplete:
		return "sweep-complete"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase by name in JSON and YAML output.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Action is what happened (or, in a plan, would happen) to one asset.
type Action string

const (
	// ActionLinked means the target now links to the source
	ActionLinked Action = "linked"

	// ActionSkipped means the source was missing or of the wrong kind
	ActionSkipped Action = "skipped"

	// ActionFailed means linking raised a LinkError
	ActionFailed Action = "failed"

	// ActionCreate is planned for an empty target
	ActionCreate Action = "create"

	// ActionReplace is planned for an occupied target that is not the link
	ActionReplace Action = "replace"

	// ActionUnchanged is planned for a target already linked to the source
	ActionUnchanged Action = "unchanged"

	// ActionRemoved means uninstall removed the link
	ActionRemoved Action = "removed"

	// ActionLeft means uninstall found something it does not own
	ActionLeft Action = "left"
)

// AssetResult is the outcome for one asset.
type AssetResult struct {
	Asset assets.Asset `json:"asset" yaml:"asset"`

	// Source is the absolute source path. Empty when the source was not found.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Target is the absolute path under the target directory
	Target string `json:"target" yaml:"target"`

	Action Action `json:"action" yaml:"action"`

	// Reason explains a skip, what was replaced, or the inspected state
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Error holds the failure message; Err the error itself
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	Err   error  `json:"-" yaml:"-"`
}

// MergeResult is the outcome of one post-install JSON merge.
type MergeResult struct {
	Source  string `json:"source" yaml:"source"`
	Key     string `json:"key" yaml:"key"`
	Into    string `json:"into" yaml:"into"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report tracks the complete context and results of one installer run.
type Report struct {
	// Command is the operation run (install, plan, uninstall)
	Command string `json:"command" yaml:"command"`

	SourceRoot string `json:"source_root" yaml:"source_root"`
	TargetDir  string `json:"target_dir" yaml:"target_dir"`

	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Phase is the last phase reached
	Phase Phase `json:"phase" yaml:"phase"`

	Assets []AssetResult `json:"assets" yaml:"assets"`

	// Swept lists broken symlink names removed (or, in a plan, that would be)
	Swept []string `json:"swept,omitempty" yaml:"swept,omitempty"`

	Merges []MergeResult `json:"merges,omitempty" yaml:"merges,omitempty"`

	StartTime time.Time `json:"start_time" yaml:"start_time"`
	EndTime   time.Time `json:"end_time" yaml:"end_time"`

	// Error is the fatal or summary error message; Err the error itself
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	Err   error  `json:"-" yaml:"-"`
}

func newReport(command, sourceRoot, targetDir string, dryRun bool) *Report {
	return &Report{
		Command:    command,
		SourceRoot: sourceRoot,
		TargetDir:  targetDir,
		DryRun:     dryRun,
		Phase:      PhaseIdle,
		StartTime:  time.Now(),
	}
}

// advance moves the state machine forward. Moving backwards is a bug.
func (r *Report) advance(p Phase) {
	if p < r.Phase {
		panic("installer: phase moved backwards from " + r.Phase.String() + " to " + p.String())
	}
	r.Phase = p
}

// finish records err (if any) and moves to Done.
func (r *Report) finish(err error) {
	if err != nil {
		r.Err = err
		r.Error = err.Error()
	}
	r.advance(PhaseDone)
	r.EndTime = time.Now()
}

func (r *Report) add(res AssetResult) {
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	r.Assets = append(r.Assets, res)
}

// Succeeded reports whether the run completed with no failed asset or merge.
func (r *Report) Succeeded() bool {
	if r.Err != nil {
		return false
	}
	for _, a := range r.Assets {
		if a.Action == ActionFailed {
			return false
		}
	}
	for _, m := range r.Merges {
		if m.Error != "" {
			return false
		}
	}
	return true
}

// Count returns how many assets ended with action.
func (r *Report) Count(action Action) int {
	n := 0
	for _, a := range r.Assets {
		if a.Action == action {
			n++
		}
	}
	return n
}

// EntryStatus is the observed state of one managed entry.
type EntryStatus struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`

	// Source is the absolute source path, empty when the source is not usable
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// SourceState is "found", "missing" or "wrong-kind"; empty for entries
	// that do not correspond to an asset
	SourceState string `json:"source_state,omitempty" yaml:"source_state,omitempty"`

	State links.State `json:"state" yaml:"state"`

	// Asset is false for broken links in the target directory that no
	// current asset accounts for
	Asset bool `json:"asset" yaml:"asset"`
}
