package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Install software described by a recipe, dependencies first"
	MsgCheckShort        = "Run only the check commands of a recipe"
	MsgConfigShort       = "Print the effective configuration as TOML"
	MsgRecipeFormatShort = "Describe the recipe file format"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "deptool version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrRenderConfig = "failed to render configuration: %w"
	MsgErrLoadTopics   = "failed to load help topics: %w"
	MsgErrNoTopic      = "help topic %q is missing"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagPrefix     = "Install root (default $PWD/build)"
	MsgFlagProjectDir = "Project root, installs into <projectdir>/build and exports PROJECTDIR"
	MsgFlagConfig     = "Config file (default ./deptool.toml)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
