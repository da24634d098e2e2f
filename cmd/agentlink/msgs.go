package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link agent configuration from a repository into place"
	MsgInstallShort    = "Link assets into the target directory"
	MsgPlanShort       = "Show what install would change"
	MsgStatusShort     = "Show the state of every managed entry"
	MsgSweepShort      = "Remove broken symbolic links from the target directory"
	MsgUninstallShort  = "Remove the links install created"
	MsgConfigShort     = "Inspect and write configuration"
	MsgConfigInitShort = "Write a config file with the current settings"
	MsgConfigShowShort = "Print the effective configuration"
	MsgConfigDefShort  = "Print the built-in defaults"
	MsgTopicsShort     = "Display available documentation topics"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgConfigWritten = "Wrote configuration to [path]%s[/path]"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSource    = "Source root containing the assets (default: current directory)"
	MsgFlagTarget    = "Target directory (default: ~/.config/opencode)"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagConfig    = "Read this config file in addition to the user and repo files"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagKeepGoing = "Keep linking after an asset fails"
	MsgFlagPolicy    = "Sweep policy: all, managed or none"
	MsgFlagForce     = "Overwrite an existing config file"
	MsgFlagOutput    = "Write to this path instead of the user config file"
	MsgFlagManDir    = "Directory to write man pages into (default: stdout)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/sweep-long.txt
	msgSweepLongRaw string
	MsgSweepLong    = strings.TrimSpace(msgSweepLongRaw)

	//go:embed msgs/uninstall-long.txt
	msgUninstallLongRaw string
	MsgUninstallLong    = strings.TrimSpace(msgUninstallLongRaw)

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
