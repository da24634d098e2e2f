// Package config handles configuration management for agentlink.
// It loads layered configuration from the embedded defaults, TOML or YAML
// files, environment variables and command-line overrides.
package config
