package installer

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/agentlink/pkg/assets"
	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/links"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Plan reports what Install would do without touching the filesystem.
func (i *Installer) Plan() (*Report, error) {
	report := newReport("plan", i.opts.SourceRoot, i.opts.TargetDir, true)

	list, merges, err := i.Assets()
	if err != nil {
		report.finish(err)
		return report, err
	}
	report.advance(PhaseAssetsEnumerated)

	relinked := make(map[string]bool, len(list))
	for _, asset := range list {
		target := filepath.Join(i.opts.TargetDir, asset.TargetName)
		res := AssetResult{Asset: asset, Target: target}

		resolved, err := i.resolver.Resolve(i.opts.SourceRoot, asset.SourceRelativePath, asset.Kind)
		if err != nil {
			err = errors.Wrapf(err, errors.ErrInstallSourceAccess, "failed to check source %s", asset.SourceRelativePath)
			report.finish(err)
			return report, err
		}
		if !resolved.OK() {
			res.Action = ActionSkipped
			res.Reason = skipReason(resolved, asset.Kind)
			report.add(res)
			continue
		}

		res.Source = resolved.Path
		state := i.links.Inspect(target, resolved.Path)
		switch state {
		case links.StateMissing:
			res.Action = ActionCreate
		case links.StateLinked:
			res.Action = ActionUnchanged
		default:
			res.Action = ActionReplace
			res.Reason = state.String()
		}
		relinked[asset.TargetName] = true
		report.add(res)
	}
	report.advance(PhaseAssetsLinked)

	opts := i.opts.Sweep
	opts.DryRun = true
	swept, err := i.links.Sweep(i.opts.TargetDir, opts)
	if err != nil {
		report.finish(err)
		return report, err
	}
	// A broken link that an asset is about to replace is not swept
	for _, name := range swept {
		if !relinked[name] {
			report.Swept = append(report.Swept, name)
		}
	}
	report.advance(PhaseSweepComplete)

	for _, m := range merges {
		report.Merges = append(report.Merges, MergeResult{
			Source:  filepath.Join(i.opts.SourceRoot, filepath.FromSlash(m.Source)),
			Key:     m.Key,
			Into:    i.mergeDestination(m.Into),
			Outcome: "planned",
		})
	}

	report.finish(nil)
	return report, nil
}

// Status inspects every asset's target and lists broken links in the
// target directory that no asset accounts for.
func (i *Installer) Status() ([]EntryStatus, error) {
	list, _, err := i.Assets()
	if err != nil {
		return nil, err
	}

	var entries []EntryStatus
	known := make(map[string]bool, len(list))
	for _, asset := range list {
		target := filepath.Join(i.opts.TargetDir, asset.TargetName)
		known[asset.TargetName] = true

		resolved, err := i.resolver.Resolve(i.opts.SourceRoot, asset.SourceRelativePath, asset.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInstallSourceAccess, "failed to check source %s", asset.SourceRelativePath)
		}

		entries = append(entries, EntryStatus{
			Name:        asset.TargetName,
			Target:      target,
			Source:      resolved.Path,
			SourceState: resolved.Status.String(),
			State:       i.links.Inspect(target, i.expectedSource(asset)),
			Asset:       true,
		})
	}

	broken, err := i.links.Sweep(i.opts.TargetDir, links.SweepOptions{Policy: links.SweepAll, DryRun: true})
	if err != nil {
		return nil, err
	}
	sort.Strings(broken)
	for _, name := range broken {
		if known[name] {
			continue
		}
		entries = append(entries, EntryStatus{
			Name:   name,
			Target: filepath.Join(i.opts.TargetDir, name),
			State:  links.StateBroken,
		})
	}
	return entries, nil
}

// Uninstall removes each asset's target when it is a symlink into the
// source root. Anything else at a target is left alone. JSON merges are not
// undone.
func (i *Installer) Uninstall() (*Report, error) {
	logger := logging.GetLogger("installer")
	report := newReport("uninstall", i.opts.SourceRoot, i.opts.TargetDir, false)

	held, err := i.acquire()
	if err != nil {
		report.finish(err)
		return report, err
	}
	defer held.Release()

	list, _, err := i.Assets()
	if err != nil {
		report.finish(err)
		return report, err
	}
	report.advance(PhaseAssetsEnumerated)

	for _, asset := range list {
		target := filepath.Join(i.opts.TargetDir, asset.TargetName)
		res := AssetResult{Asset: asset, Target: target}

		removed, err := i.links.Unlink(target, i.opts.SourceRoot)
		switch {
		case err != nil:
			res.Action = ActionFailed
			res.Err = errors.Wrapf(err, errors.ErrLinkRemove, "failed to remove %s", target).
				WithDetail("target", target)
		case removed:
			res.Action = ActionRemoved
		default:
			res.Action = ActionLeft
			res.Reason = i.links.Inspect(target, i.expectedSource(asset)).String()
		}
		report.add(res)
	}

	err = incomplete(report)
	report.finish(err)
	logger.Info().Int("removed", report.Count(ActionRemoved)).Msg("Uninstall complete")
	return report, err
}

// expectedSource is where an asset's link should point, whether or not the
// source currently exists.
func (i *Installer) expectedSource(asset assets.Asset) string {
	return filepath.Join(i.opts.SourceRoot, asset.SourceRelativePath)
}
