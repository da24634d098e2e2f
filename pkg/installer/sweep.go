package installer

import (
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Sweep runs only the cleanup phase: broken links in the target directory
// are removed under the configured policy. It needs no readable source
// folder, so it also cleans up after a source repository was moved away.
// With dryRun nothing is removed and no lock is taken.
func (i *Installer) Sweep(dryRun bool) (*Report, error) {
	logger := logging.GetLogger("installer")
	report := newReport("sweep", i.opts.SourceRoot, i.opts.TargetDir, dryRun)

	if !dryRun {
		held, err := i.acquire()
		if err != nil {
			report.finish(err)
			return report, err
		}
		defer held.Release()
	}

	opts := i.opts.Sweep
	opts.DryRun = dryRun
	swept, err := i.links.Sweep(i.opts.TargetDir, opts)
	report.Swept = swept
	if err != nil {
		report.finish(err)
		return report, err
	}
	report.advance(PhaseSweepComplete)
	report.finish(nil)

	logger.Info().Int("swept", len(swept)).Bool("dryRun", dryRun).Msg("Sweep complete")
	return report, nil
}
