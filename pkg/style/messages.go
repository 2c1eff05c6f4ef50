package style

// Progress messages, formatted with the recipe name and version or with a
// URL and destination.
const (
	MsgChecking           = "Checking for '%s' '%s'"
	MsgSatisfied          = "'%s' '%s' is already installed"
	MsgNotSatisfied       = "'%s' '%s' is not installed"
	MsgInstallingDeps     = "Installing dependencies for '%s' '%s'"
	MsgDependency         = "Installing dependency '%s'"
	MsgDependencyDone     = "Dependency '%s' installed successfully"
	MsgDependenciesFailed = "Recipe for '%s' '%s' failed, can't satisfy some dependencies"
	MsgDownloading        = "Downloading '%s' into '%s'"
	MsgAlreadyDownloaded  = "File '%s' already downloaded into '%s'. Skipping."
	MsgInstalling         = "Installing '%s' '%s'"
	MsgInstalled          = "'%s' '%s' installed successfully"
	MsgInstallFailed      = "Failed to install '%s' '%s'"
	MsgRecipeFailed       = "Recipe for '%s' '%s' failed"
)
