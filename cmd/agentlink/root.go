package main

import (
	stderrors "errors"

	"github.com/arthur-debert/agentlink/internal/version"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/topics"
	"github.com/arthur-debert/agentlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// reportedError marks an error the command already rendered, so main only
// sets the exit code.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}
	install := newInstallCmd(g)

	rootCmd := &cobra.Command{
		Use:     "agentlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		// Bare agentlink installs
		RunE:              install.RunE,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.source, "source", "", MsgFlagSource)
	rootCmd.PersistentFlags().StringVar(&g.target, "target", "", MsgFlagTarget)
	rootCmd.PersistentFlags().Var(&g.format, "format", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagDirname("source")
	_ = rootCmd.MarkPersistentFlagDirname("target")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(install)
	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newSweepCmd(g))
	rootCmd.AddCommand(newUninstallCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	// Topic-based help from the embedded docs
	if _, err := topics.Initialize(rootCmd, topics.Docs(), topics.Options{
		Renderer: topicRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func topicRenderer() topics.Renderer {
	if isTerminal() {
		return topics.NewGlamourRenderer()
	}
	return &topics.PlainRenderer{}
}
