package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/deptool/internal/version"
	"github.com/arthur-debert/deptool/pkg/commands"
	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/shell"
	"github.com/arthur-debert/deptool/pkg/style"
)

const recipeFormatTopic = "recipe-format"

// collaborators builds the progress printer and shell runner for cmd, so
// command output follows cmd.SetOut in tests.
func collaborators(cmd *cobra.Command, cfg *config.Config) (*style.Progress, *shell.ShellRunner) {
	progress := style.NewProgress(cmd.OutOrStdout())
	runner := &shell.ShellRunner{
		Shell:    cfg.Shell,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Progress: progress,
	}
	return progress, runner
}

func runInstall(cmd *cobra.Command, flags *rootFlags, ref string) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	progress, runner := collaborators(cmd, cfg)

	_, err = commands.Install(cmd.Context(), commands.InstallOptions{
		Recipe:   ref,
		Config:   cfg,
		Runner:   runner,
		Progress: progress,
	})
	return err
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "check <recipe>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			progress, runner := collaborators(cmd, cfg)

			result, err := commands.Check(cmd.Context(), commands.CheckOptions{
				Recipe:   args[0],
				Config:   cfg,
				Runner:   runner,
				Progress: progress,
			})
			if err != nil {
				return err
			}
			if !result.Satisfied() {
				return ErrNotSatisfied
			}
			return nil
		},
	}
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return fmt.Errorf(MsgErrRenderConfig, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newRecipeFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     recipeFormatTopic,
		Short:   MsgRecipeFormatShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := loadTopics(style.IsTerminal(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			rendered, ok := manager.Render(recipeFormatTopic)
			if !ok {
				return fmt.Errorf(MsgErrNoTopic, recipeFormatTopic)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    `Print detailed version information including commit hash and build date`,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
