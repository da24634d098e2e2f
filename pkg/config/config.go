package config

import (
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/links"
)

// Config is the resolved configuration for one run.
type Config struct {
	SourceDir string  `koanf:"source_dir" toml:"source_dir"`
	TargetDir string  `koanf:"target_dir" toml:"target_dir"`
	Manifest  string  `koanf:"manifest" toml:"manifest"`
	Sweep     Sweep   `koanf:"sweep" toml:"sweep"`
	Install   Install `koanf:"install" toml:"install"`
}

// Sweep controls the broken-link cleanup after the link phase.
type Sweep struct {
	Policy string   `koanf:"policy" toml:"policy"`
	Keep   []string `koanf:"keep" toml:"keep"`
}

// Install controls the link phase.
type Install struct {
	KeepGoing bool `koanf:"keep_going" toml:"keep_going"`
	Lock      bool `koanf:"lock" toml:"lock"`
}

// Validate rejects values the installer cannot act on.
func (c *Config) Validate() error {
	if c.SourceDir == "" && c.Manifest == "" {
		return errors.New(errors.ErrConfigValid, "one of source_dir or manifest must be set")
	}
	if _, err := links.ParseSweepPolicy(c.Sweep.Policy); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid sweep.policy %q", c.Sweep.Policy).
			WithDetail("key", "sweep.policy")
	}
	return nil
}

// SweepPolicy returns the parsed sweep policy. Call after Validate.
func (c *Config) SweepPolicy() links.SweepPolicy {
	p, _ := links.ParseSweepPolicy(c.Sweep.Policy)
	return p
}

// normalize trims values that arrive as comma-separated env strings.
func (c *Config) normalize() {
	keep := c.Sweep.Keep[:0]
	for _, name := range c.Sweep.Keep {
		if name = strings.TrimSpace(name); name != "" {
			keep = append(keep, name)
		}
	}
	c.Sweep.Keep = keep
	c.Sweep.Policy = strings.ToLower(strings.TrimSpace(c.Sweep.Policy))
}
