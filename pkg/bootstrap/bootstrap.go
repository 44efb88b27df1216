// Package bootstrap runs a complete machine bootstrap: it asks the operator
// for an account, prepares the system, installs the manifest and finishes
// with the dotfiles and system tweaks.
//
// Only a handful of failures stop a run: the operator cancelling, user
// creation, a missing prerequisite or AUR helper, and an unobtainable
// manifest. Everything after the manifest is loaded is best effort and ends
// up in Result.Warnings.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/dialog"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/installer"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/pipeline"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
	"github.com/arthur-debert/rigup/pkg/system"
	"github.com/spf13/afero"
)

// Deps are the collaborators a run talks to.
type Deps struct {
	Config  *config.Config
	Runner  runner.Runner
	FS      afero.Fs
	Dialog  dialog.Dialog
	Fetcher manifest.Fetcher
	// ManifestCache receives a copy of the manifest that was used
	ManifestCache string
}

// Options skip the optional tail of a run.
type Options struct {
	SkipDotfiles bool
	SkipTweaks   bool
}

// Result describes a finished run.
type Result struct {
	User     string
	Summary  pipeline.Summary
	Warnings []error
}

func (r *Result) warn(step string, err error) {
	logger := logging.GetLogger("bootstrap")
	logger.Warn().Err(err).Str("step", step).Msg("Step failed, continuing")
	r.Warnings = append(r.Warnings, errors.Wrapf(err, errors.GetErrorCode(err), "%s", step))
}

// Run performs the whole bootstrap.
func Run(ctx context.Context, deps Deps, opts Options) (*Result, error) {
	logger := logging.GetLogger("bootstrap")
	cfg := deps.Config
	d := deps.Dialog
	sys := system.New(deps.Runner, deps.FS)
	installers := installer.NewSet(deps.Runner, cfg)

	if err := d.Message("Welcome", welcomeText); err != nil {
		return nil, err
	}
	if err := dialog.Require(d, "Set up this machine now?"); err != nil {
		return nil, err
	}

	name, password, err := askAccount(d, cfg.User.Name)
	if err != nil {
		return nil, err
	}
	if sys.UserExists(ctx, name) {
		prompt := fmt.Sprintf("The user `%s` already exists. rigup will overwrite conflicting settings and dotfiles in its home and set its password. Continue?", name)
		if err := dialog.Require(d, prompt); err != nil {
			return nil, err
		}
	}
	if err := dialog.Require(d, "Everything is ready. Begin the installation?"); err != nil {
		return nil, err
	}

	result := &Result{User: name}

	d.ShowProgress("Refreshing the Arch keyring...")
	if err := sys.RefreshKeyring(ctx); err != nil {
		result.warn("refresh keyring", err)
	}

	d.ShowProgress(fmt.Sprintf("Adding user `%s`...", name))
	if err := sys.EnsureUser(ctx, name, password, cfg.User.Shell); err != nil {
		return result, err
	}
	sess := session.New(name, "", cfg.User.Scratch)
	if err := sys.PrepareScratch(ctx, sess); err != nil {
		return result, errors.Wrap(err, errors.ErrUserCreate, "failed to prepare the user's source directory")
	}

	cleanup, err := sys.TemporarySudo()
	if err != nil {
		return result, errors.Wrap(err, errors.ErrPrerequisiteInstallFailed, "failed to grant temporary sudo")
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error().Err(err).Msg("Temporary sudo grant could not be removed")
		}
	}()

	if err := installPrerequisites(ctx, d, installers.Official, sess, cfg.Prerequisites); err != nil {
		return result, err
	}
	sys.SyncTime(ctx)

	if err := sys.TweakPacman(cfg.System.ParallelDownloads); err != nil {
		result.warn("pacman.conf", err)
	}
	if err := sys.TweakMakepkg(); err != nil {
		result.warn("makepkg.conf", err)
	}

	d.ShowProgress(fmt.Sprintf("Installing the AUR helper `%s`...", cfg.AUR.Helper))
	if err := sys.BootstrapHelper(ctx, sess, cfg.AUR.Helper, cfg.AUR.Repo); err != nil {
		return result, err
	}

	summary, err := installManifest(ctx, deps, sess, installers)
	result.Summary = summary
	if err != nil {
		return result, err
	}

	if !opts.SkipDotfiles && cfg.Dotfiles.Repo != "" {
		d.ShowProgress("Deploying dotfiles...")
		if err := sys.DeployDotfiles(ctx, sess, cfg.Dotfiles.Repo, cfg.Dotfiles.Branch); err != nil {
			result.warn("dotfiles", err)
		}
	}

	if !opts.SkipTweaks {
		applyTweaks(ctx, sys, sess, cfg, result)
	}

	if err := sys.FinalSudoPolicy(); err != nil {
		result.warn("sudo policy", err)
	}

	if err := d.Message("All done!", Farewell(result)); err != nil {
		logger.Debug().Err(err).Msg("Farewell message not shown")
	}
	return result, nil
}

// InstallOptions drive a manifest-only run for an existing account.
type InstallOptions struct {
	User string
	// Manifest overrides the configured location; a URL or a path
	Manifest string
}

// Install runs only the package pipeline for an existing user.
func Install(ctx context.Context, deps Deps, opts InstallOptions) (pipeline.Summary, error) {
	name := opts.User
	if name == "" {
		name = deps.Config.User.Name
	}
	if err := system.ValidateUsername(name); err != nil {
		return pipeline.Summary{}, err
	}

	if opts.Manifest != "" {
		cfg := *deps.Config
		if isURL(opts.Manifest) {
			cfg.Manifest = config.ManifestConfig{URL: opts.Manifest}
		} else {
			cfg.Manifest = config.ManifestConfig{Local: opts.Manifest}
		}
		deps.Config = &cfg
	}

	sess := session.New(name, "", deps.Config.User.Scratch)
	return installManifest(ctx, deps, sess, installer.NewSet(deps.Runner, deps.Config))
}

func installManifest(ctx context.Context, deps Deps, sess *session.Session, installers installer.Set) (pipeline.Summary, error) {
	cfg := deps.Config
	source := &manifest.Source{
		Local:     cfg.Manifest.Local,
		URL:       cfg.Manifest.URL,
		CachePath: deps.ManifestCache,
		FS:        deps.FS,
		Fetcher:   deps.Fetcher,
	}
	m, err := source.Load(ctx)
	if err != nil {
		return pipeline.Summary{}, err
	}

	if err := sess.SnapshotInstalled(ctx, deps.Runner, cfg.AUR.Query); err != nil {
		logger := logging.GetLogger("bootstrap")
		logger.Warn().Err(err).Msg("Installed package snapshot unavailable, AUR installs will not be skipped")
	}

	summary := pipeline.Run(ctx, sess, m, installers, deps.Dialog, pipeline.Options{Strict: cfg.Pipeline.Strict})
	return summary, summary.Err
}

func installPrerequisites(ctx context.Context, d dialog.Dialog, official installer.Installer, sess *session.Session, pkgs []string) error {
	for _, pkg := range pkgs {
		d.ShowProgress(fmt.Sprintf("Installing `%s`, required to install and configure other programs.", pkg))
		if _, err := official.Install(ctx, sess, pkg, ""); err != nil {
			return errors.Wrapf(err, errors.ErrPrerequisiteInstallFailed, "failed to install prerequisite %s", pkg).
				WithDetail("package", pkg)
		}
	}
	return nil
}

func applyTweaks(ctx context.Context, sys *system.System, sess *session.Session, cfg *config.Config, result *Result) {
	if err := sys.DefaultShell(ctx, sess, cfg.User.Shell); err != nil {
		result.warn("default shell", err)
	}
	if err := sys.DBusMachineID(ctx); err != nil {
		result.warn("dbus machine id", err)
	}
	if cfg.System.TapToClick {
		if err := sys.TouchpadTapToClick(); err != nil {
			result.warn("touchpad", err)
		}
	}
	if cfg.System.DisableBell {
		if err := sys.DisableBell(ctx); err != nil {
			result.warn("bell", err)
		}
	}
}

// askAccount prompts until a valid username and two matching passwords are
// given. A preset name is only validated.
func askAccount(d dialog.Dialog, preset string) (string, string, error) {
	name := preset
	for {
		if name == "" {
			var err error
			if name, err = d.PromptText("Enter a name for the user account"); err != nil {
				return "", "", err
			}
		}
		err := system.ValidateUsername(name)
		if err == nil {
			break
		}
		if preset != "" {
			return "", "", err
		}
		if err := d.Message("Invalid username", "Use lowercase letters, digits, - or _, starting with a letter or _."); err != nil {
			return "", "", err
		}
		name = ""
	}

	for {
		pass1, err := d.PromptSecret(fmt.Sprintf("Enter a password for %s", name))
		if err != nil {
			return "", "", err
		}
		pass2, err := d.PromptSecret("Retype the password")
		if err != nil {
			return "", "", err
		}
		if system.PasswordsMatch(pass1, pass2) {
			return name, pass1, nil
		}
		if err := d.Message("Passwords do not match", "The passwords were empty or different. Try again."); err != nil {
			return "", "", err
		}
	}
}

// Farewell is the closing message of a run.
func Farewell(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Installed %d and skipped %d of %d programs for %s.",
		r.Summary.Installed, r.Summary.Skipped, r.Summary.Total, r.User)
	if ids := r.Summary.FailedIdentifiers(); len(ids) > 0 {
		fmt.Fprintf(&b, "\n\nThese failed and are listed in the install log: %s.", strings.Join(ids, ", "))
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\n\n%d configuration steps failed; see the log.", len(r.Warnings))
	}
	b.WriteString("\n\nLog out and back in as the new user to start using the system.")
	return b.String()
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

const welcomeText = `rigup sets up a fresh Arch Linux installation: it creates your user,
installs the programs listed in the manifest and deploys your dotfiles.

Run it as root on a machine with a working internet connection.`
