package cli

// Command descriptions
const (
	MsgRootShort = "Bootstrap a fresh Arch Linux machine"
	MsgRootLong  = `rigup turns a freshly installed Arch Linux system into a working desktop:
it creates your user, installs the programs listed in a package manifest
from the official repositories, the AUR, git sources and pip, deploys your
dotfiles and applies a few system tweaks.

Run 'rigup bootstrap' as root on the new machine.`

	MsgBootstrapShort = "Run the full interactive bootstrap"
	MsgBootstrapLong  = `Bootstrap asks for a user name and password, creates the account, installs
the prerequisites and the AUR helper, installs every program in the manifest
and finishes with the dotfiles and system tweaks.

A program that fails to install does not stop the run; failures are listed
at the end and their output is in the install log.`

	MsgInstallShort = "Install the manifest for an existing user"
	MsgInstallLong  = `Install runs only the package pipeline: it loads the manifest, snapshots the
installed AUR packages and installs every record for the given user. The user,
the AUR helper and the prerequisites must already exist.`

	MsgManifestShort      = "Inspect package manifests"
	MsgManifestCheckShort = "Parse a manifest and list its records"
	MsgConfigShort        = "Manage the rigup configuration file"
	MsgConfigInitShort    = "Write a commented configuration file"
	MsgConfigShowShort    = "Print the effective configuration"
	MsgTopicsShort        = "Display available documentation topics"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Configuration file (default $XDG_CONFIG_HOME/rigup/config.toml)"
	MsgFlagDryRun       = "Print commands instead of running them; files are not changed"
	MsgFlagSkipDotfiles = "Do not deploy the dotfiles repository"
	MsgFlagSkipTweaks   = "Do not apply the shell, D-Bus, touchpad and bell tweaks"
	MsgFlagUser         = "Target user (default user.name from the configuration)"
	MsgFlagManifest     = "Manifest path or URL (default manifest.local, then manifest.url)"
	MsgFlagStrict       = "Stop at the first program that fails to install"
	MsgFlagForce        = "Overwrite an existing file"
)

// Output
const (
	MsgDryRunNotice      = "\nDRY RUN MODE - nothing was installed and no file was changed"
	MsgConfigWritten     = "Configuration written to %s\n"
	MsgVersionFormat     = "rigup version %s\n  commit: %s\n  built:  %s\n"
	MsgUnknownTopic      = "unknown topic %q"
	MsgErrNotRoot        = "rigup bootstrap must run as root"
	MsgErrConfigExists   = "%s already exists, use --force to overwrite it"
	MsgErrInstallLog     = "failed to open the install log"
	MsgFailedRecordsNote = "%d programs failed to install"
)

const MsgCompletionLong = `To load completions:

Bash:
  $ source <(rigup completion bash)
  # To load completions for each session, execute once:
  $ rigup completion bash > /etc/bash_completion.d/rigup

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ rigup completion zsh > "${fpath[1]}/_rigup"

Fish:
  $ rigup completion fish | source
  # To load completions for each session, execute once:
  $ rigup completion fish > ~/.config/fish/completions/rigup.fish
`

// MsgUsageTemplate groups commands the way the root help lists them.
const MsgUsageTemplate = `{{boldUpper "Usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands"}}:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" or "{{.Root.Name}} help <topic>" for more information.{{end}}
`
