package cli

import (
	"embed"
	goerrors "errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/deptool/internal/version"
	"github.com/arthur-debert/deptool/pkg/cobrax/topics"
	"github.com/arthur-debert/deptool/pkg/config"
	"github.com/arthur-debert/deptool/pkg/logging"
)

//go:embed topics/*.md
var topicFiles embed.FS

const topicsDir = "topics"

// ErrNotSatisfied is returned by the check command when a check command
// fails. It only sets the exit status and is never printed.
var ErrNotSatisfied = goerrors.New("recipe is not satisfied")

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	verbosity  int
	prefix     string
	projectDir string
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "deptool [flags] <recipe>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, flags, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.prefix, "prefix", "", MsgFlagPrefix)
	rootCmd.PersistentFlags().StringVar(&flags.projectDir, "projectdir", "", MsgFlagProjectDir)
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	rootCmd.MarkFlagsMutuallyExclusive("prefix", "projectdir")

	rootCmd.AddGroup(
		&cobra.Group{ID: "recipes", Title: "Recipe Commands:"},
		&cobra.Group{ID: "misc", Title: "Misc Commands:"},
	)

	rootCmd.AddCommand(newCheckCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newRecipeFormatCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help
	if manager, err := loadTopics(false); err == nil {
		manager.Install(rootCmd)
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// loadConfig merges the configuration sources with the root flags on top.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	overrides := map[string]interface{}{}
	if f.prefix != "" {
		overrides["layout"] = config.LayoutPrefix
		overrides["prefix"] = f.prefix
	}
	if f.projectDir != "" {
		overrides["layout"] = config.LayoutProject
		overrides["project_dir"] = f.projectDir
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// loadTopics reads the embedded help topics, rendering markdown with
// glamour when styled is set.
func loadTopics(styled bool) (*topics.Manager, error) {
	opts := topics.Options{Extensions: []string{".md"}}
	if styled {
		opts.Renderer = topics.NewGlamourRenderer()
	}
	manager, err := topics.Load(topicFiles, topicsDir, opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadTopics, err)
	}
	return manager, nil
}
