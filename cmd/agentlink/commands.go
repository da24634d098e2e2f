package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/internal/version"
	"github.com/arthur-debert/agentlink/pkg/config"
	"github.com/arthur-debert/agentlink/pkg/installer"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/arthur-debert/agentlink/pkg/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// runReport loads settings, runs op and renders its report. A failed run is
// rendered once, as part of the report.
func runReport(cmd *cobra.Command, g *globalOptions, overrides map[string]interface{}, op func(*installer.Installer) (*installer.Report, error)) error {
	r, err := g.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	s, err := g.loadSettings(overrides)
	if err != nil {
		return fail(cmd, g, err)
	}
	inst, err := s.installer()
	if err != nil {
		return fail(cmd, g, err)
	}

	report, err := op(inst)
	if report != nil {
		if rerr := r.RenderResult(report); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		logger := logging.GetLogger("cmd")
		logger.Debug().Err(err).Str("command", cmd.Name()).Msg("Run failed")
		return &reportedError{err: err}
	}
	return nil
}

// fail renders err to stderr in the selected format and marks it reported.
func fail(cmd *cobra.Command, g *globalOptions, err error) error {
	r, rerr := g.renderer(cmd.ErrOrStderr())
	if rerr != nil {
		return err
	}
	if rerr := r.RenderError(err); rerr != nil {
		return err
	}
	return &reportedError{err: err}
}

func newInstallCmd(g *globalOptions) *cobra.Command {
	var (
		dryRun    bool
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if keepGoing {
				overrides["install.keep_going"] = true
			}
			return runReport(cmd, g, overrides, func(inst *installer.Installer) (*installer.Report, error) {
				if dryRun {
					return inst.Plan()
				}
				return inst.Install()
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, MsgFlagKeepGoing)
	return cmd
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgInstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, nil, func(inst *installer.Installer) (*installer.Report, error) {
				return inst.Plan()
			})
		},
	}
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := g.loadSettings(nil)
			if err != nil {
				return fail(cmd, g, err)
			}
			inst, err := s.installer()
			if err != nil {
				return fail(cmd, g, err)
			}
			entries, err := inst.Status()
			if err != nil {
				return fail(cmd, g, err)
			}
			return r.RenderResult(entries)
		},
	}
}

func newSweepCmd(g *globalOptions) *cobra.Command {
	var (
		dryRun bool
		policy string
	)

	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   MsgSweepShort,
		Long:    MsgSweepLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if policy != "" {
				overrides["sweep.policy"] = policy
			}
			return runReport(cmd, g, overrides, func(inst *installer.Installer) (*installer.Report, error) {
				return inst.Sweep(dryRun)
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().StringVar(&policy, "policy", "", MsgFlagPolicy)
	_ = cmd.RegisterFlagCompletionFunc("policy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"all", "managed", "none"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newUninstallCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   MsgUninstallShort,
		Long:    MsgUninstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, nil, func(inst *installer.Installer) (*installer.Report, error) {
				return inst.Uninstall()
			})
		},
	}
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
	}

	var (
		force  bool
		output string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Long:  MsgConfigInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := g.loadSettings(nil)
			if err != nil {
				return fail(cmd, g, err)
			}

			path := output
			if path == "" {
				path = paths.UserConfigPath()
			}
			if err := config.WriteConfigFile(path, s.config, force); err != nil {
				return fail(cmd, g, err)
			}
			return r.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	initCmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.loadSettings(nil)
			if err != nil {
				return fail(cmd, g, err)
			}
			content, err := config.GenerateConfigContent(s.config)
			if err != nil {
				return fail(cmd, g, err)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}

	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd, defaultsCmd)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := topics.NewWithOptions(topics.Docs(), topics.Options{})
			if err != nil {
				return err
			}
			tm.WriteList(cmd.OutOrStdout(), cmd.Root().Name())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "agentlink version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd(root *cobra.Command) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   strings.ToUpper(root.Name()),
				Section: "1",
				Source:  "agentlink " + version.Version,
				Manual:  "agentlink manual",
			}
			if dir == "" {
				return doc.GenMan(root, header, cmd.OutOrStdout())
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			log.Info().Str("dir", filepath.Clean(dir)).Msg("Writing man pages")
			return doc.GenManTree(root, header, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}
