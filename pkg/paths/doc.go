// Package paths provides centralized path handling for agentlink.
//
// It resolves the two locations every operation is built around, the
// Source Root (the repository holding the assets) and the Target Directory
// (where the links are created), and the per-user XDG locations for the
// config file, the log file and the install lock.
//
// # Defaults
//
//   - Source Root: the current working directory
//   - Target Directory: $HOME/.config/opencode
//   - Config: $XDG_CONFIG_HOME/agentlink/config.toml
//   - State: $XDG_STATE_HOME/agentlink (install.lock, agentlink.log)
//
// All values are computed once by New and injected into the installer.
// Nothing below the CLI reads the environment in the middle of an operation.
package paths
