package installer

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/agentlink/pkg/assets"
	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/jsonmerge"
	"github.com/arthur-debert/agentlink/pkg/links"
	"github.com/arthur-debert/agentlink/pkg/lock"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/arthur-debert/agentlink/pkg/source"
)

// Options defines the options for an Installer.
type Options struct {
	// SourceRoot is the absolute path of the repository holding the assets.
	SourceRoot string
	// TargetDir is the absolute path links are created in.
	TargetDir string
	// SourceDir is the subfolder of SourceRoot whose entries are the
	// assets. Defaults to "opencode". Ignored when Manifest is set.
	SourceDir string
	// Manifest is the path of a static asset table. Relative paths are
	// relative to SourceRoot.
	Manifest string
	// Sweep controls the broken-link cleanup. Root is always SourceRoot.
	Sweep links.SweepOptions
	// KeepGoing continues the link phase after a LinkError.
	KeepGoing bool
	// LockPath, when set, is locked for the duration of Install and Uninstall.
	LockPath string
	// FS is the filesystem to operate on. Defaults to the OS.
	FS filesystem.FS
}

// Installer installs one source root into one target directory.
type Installer struct {
	opts     Options
	fs       filesystem.FS
	resolver *source.Resolver
	links    *links.Manager
}

// New validates opts and creates an Installer. Both directories must be
// absolute; they are injected here and never re-read from the environment.
func New(opts Options) (*Installer, error) {
	if opts.SourceRoot == "" || !filepath.IsAbs(opts.SourceRoot) {
		return nil, errors.Newf(errors.ErrInvalidInput, "source root must be an absolute path, got %q", opts.SourceRoot)
	}
	if opts.TargetDir == "" || !filepath.IsAbs(opts.TargetDir) {
		return nil, errors.Newf(errors.ErrInvalidInput, "target directory must be an absolute path, got %q", opts.TargetDir)
	}
	opts.SourceRoot = filepath.Clean(opts.SourceRoot)
	opts.TargetDir = filepath.Clean(opts.TargetDir)

	if opts.SourceDir == "" {
		opts.SourceDir = assets.DefaultSourceDir
	}
	if opts.Manifest != "" && !filepath.IsAbs(opts.Manifest) {
		opts.Manifest = filepath.Join(opts.SourceRoot, opts.Manifest)
	}
	opts.Sweep.Root = opts.SourceRoot
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	return &Installer{
		opts:     opts,
		fs:       opts.FS,
		resolver: source.NewResolver(opts.FS),
		links:    links.NewManager(opts.FS),
	}, nil
}

// Options returns the effective options.
func (i *Installer) Options() Options {
	return i.opts
}

// TargetDir returns the directory for a named target. Only "opencode" is
// known.
func (i *Installer) TargetDir(name string) (string, error) {
	if name != paths.DefaultTargetName {
		return "", errors.Newf(errors.ErrInstallUnknownTarget, "unknown install target: %q", name).
			WithDetail("target", name)
	}
	return i.opts.TargetDir, nil
}

// Assets derives the asset list and any merges from the manifest, or by
// enumerating the source subfolder.
func (i *Installer) Assets() ([]assets.Asset, []assets.Merge, error) {
	if i.opts.Manifest != "" {
		m, err := assets.LoadManifest(i.fs, i.opts.Manifest)
		if err != nil {
			return nil, nil, err
		}
		return m.AssetList(), m.Merges, nil
	}
	list, err := assets.Enumerate(i.fs, i.opts.SourceRoot, i.opts.SourceDir)
	return list, nil, err
}

// Install runs the full install. The returned report is never nil; the
// error is the fatal error, or an INSTALL_INCOMPLETE summary when assets or
// merges failed without aborting the run.
func (i *Installer) Install() (*Report, error) {
	logger := logging.GetLogger("installer")
	done := logging.LogOperationStart(logger, "install")
	defer done()

	report := newReport("install", i.opts.SourceRoot, i.opts.TargetDir, false)

	held, err := i.acquire()
	if err != nil {
		report.finish(err)
		return report, err
	}
	defer held.Release()

	list, merges, err := i.Assets()
	if err != nil {
		report.finish(err)
		return report, err
	}
	report.advance(PhaseAssetsEnumerated)
	logger.Debug().Int("assets", len(list)).Msg("Assets enumerated")

	if err := i.fs.MkdirAll(i.opts.TargetDir, 0755); err != nil {
		err = errors.Wrapf(err, errors.ErrInstallTargetDir, "failed to create target directory %s", i.opts.TargetDir).
			WithDetail("path", i.opts.TargetDir)
		report.finish(err)
		return report, err
	}

	if err := i.linkAll(report, list); err != nil {
		logger.Error().Err(err).Msg("Link phase aborted")
		report.finish(err)
		return report, err
	}
	report.advance(PhaseAssetsLinked)

	swept, err := i.links.Sweep(i.opts.TargetDir, i.opts.Sweep)
	report.Swept = swept
	if err != nil {
		report.finish(err)
		return report, err
	}
	report.advance(PhaseSweepComplete)

	i.runMerges(report, merges)

	err = incomplete(report)
	report.finish(err)
	if err == nil {
		logger.Info().
			Int("linked", report.Count(ActionLinked)).
			Int("skipped", report.Count(ActionSkipped)).
			Int("swept", len(report.Swept)).
			Msg("Install complete")
	}
	return report, err
}

// InstallAll runs Install and reports success only. Failures are logged.
func (i *Installer) InstallAll() bool {
	_, err := i.Install()
	if err != nil {
		logger := logging.GetLogger("installer")
		logger.Error().Err(err).Msg("Installation failed")
		return false
	}
	return true
}

// linkAll processes assets in order. It returns an error only when the
// phase must stop: an infrastructure error from the resolver, or a
// LinkError without KeepGoing.
func (i *Installer) linkAll(report *Report, list []assets.Asset) error {
	for _, asset := range list {
		target := filepath.Join(i.opts.TargetDir, asset.TargetName)
		res := AssetResult{Asset: asset, Target: target}

		resolved, err := i.resolver.Resolve(i.opts.SourceRoot, asset.SourceRelativePath, asset.Kind)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInstallSourceAccess, "failed to check source %s", asset.SourceRelativePath).
				WithDetail("asset", asset.TargetName)
		}
		if !resolved.OK() {
			res.Action = ActionSkipped
			res.Reason = skipReason(resolved, asset.Kind)
			report.add(res)
			continue
		}
		res.Source = resolved.Path

		link, err := i.links.Link(resolved.Path, target)
		if err != nil {
			res.Action = ActionFailed
			res.Err = err
			report.add(res)
			if !i.opts.KeepGoing {
				return err
			}
			continue
		}

		res.Action = ActionLinked
		res.Source = link.Source
		if link.Replaced != links.OccupantNone {
			res.Reason = "replaced " + link.Replaced.String()
		}
		report.add(res)
	}
	return nil
}

func (i *Installer) runMerges(report *Report, merges []assets.Merge) {
	logger := logging.GetLogger("installer")
	for _, m := range merges {
		src := filepath.Join(i.opts.SourceRoot, filepath.FromSlash(m.Source))
		into := i.mergeDestination(m.Into)
		mr := MergeResult{Source: src, Key: m.Key, Into: into}

		outcome, err := jsonmerge.Merge(i.fs, src, m.Key, into)
		if err != nil {
			logger.Error().Err(err).Str("into", into).Msg("Merge failed")
			mr.Outcome = "failed"
			mr.Error = err.Error()
		} else {
			mr.Outcome = outcome.String()
		}
		report.Merges = append(report.Merges, mr)
	}
}

// mergeDestination expands ~ and makes relative paths relative to the
// target directory.
func (i *Installer) mergeDestination(into string) string {
	into = paths.ExpandHome(into)
	if filepath.IsAbs(into) {
		return filepath.Clean(into)
	}
	return filepath.Join(i.opts.TargetDir, into)
}

func (i *Installer) acquire() (*lock.Lock, error) {
	if i.opts.LockPath == "" {
		return nil, nil
	}
	return lock.Acquire(i.opts.LockPath)
}

func skipReason(r source.Resolution, expected source.Kind) string {
	if r.Status == source.WrongKind {
		return fmt.Sprintf("expected %s, found %s", expected, r.Actual)
	}
	return "source " + r.Status.String()
}

// incomplete summarizes recorded asset and merge failures.
func incomplete(report *Report) error {
	failed := report.Count(ActionFailed)
	mergeFailed := 0
	for _, m := range report.Merges {
		if m.Error != "" {
			mergeFailed++
		}
	}
	if failed == 0 && mergeFailed == 0 {
		return nil
	}
	return errors.Newf(errors.ErrInstallIncomplete, "%d of %d assets failed to link, %d merges failed",
		failed, len(report.Assets), mergeFailed).
		WithDetail("failed_assets", failed).
		WithDetail("failed_merges", mergeFailed)
}
