package main

import (
	"fmt"
	"io"

	"github.com/arthur-debert/agentlink/pkg/config"
	"github.com/arthur-debert/agentlink/pkg/installer"
	"github.com/arthur-debert/agentlink/pkg/links"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/arthur-debert/agentlink/pkg/ui"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbosity  int
	source     string
	target     string
	format     ui.Format
	configFile string
}

// settings is everything a command needs, resolved once per run.
type settings struct {
	config *config.Config
	paths  *paths.Paths
}

// loadSettings layers the configuration and resolves the source root and
// target directory. overrides are dotted config keys set by command flags.
func (g *globalOptions) loadSettings(overrides map[string]interface{}) (*settings, error) {
	// The repo config file lives in the source root, which does not depend
	// on configuration.
	probe, err := paths.New(g.source, "")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if overrides == nil {
		overrides = map[string]interface{}{}
	}
	if g.target != "" {
		overrides["target_dir"] = g.target
	}

	cfg, err := config.Load(config.Options{
		UserFile:  paths.UserConfigPath(),
		RepoFile:  probe.RepoConfigPath(),
		File:      g.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(probe.SourceRoot(), cfg.TargetDir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	return &settings{config: cfg, paths: p}, nil
}

// installer builds the engine from resolved settings.
func (s *settings) installer() (*installer.Installer, error) {
	opts := installer.Options{
		SourceRoot: s.paths.SourceRoot(),
		TargetDir:  s.paths.TargetDir(),
		SourceDir:  s.config.SourceDir,
		Sweep: links.SweepOptions{
			Policy: s.config.SweepPolicy(),
			Keep:   s.config.Sweep.Keep,
		},
		KeepGoing: s.config.Install.KeepGoing,
	}
	if s.config.Manifest != "" {
		opts.Manifest = s.paths.Resolve(s.config.Manifest)
	}
	if s.config.Install.Lock {
		opts.LockPath = paths.LockPath()
	}
	return installer.New(opts)
}

func (g *globalOptions) renderer(w io.Writer) (ui.Renderer, error) {
	return ui.NewRenderer(g.format, w)
}
