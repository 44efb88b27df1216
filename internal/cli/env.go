package cli

import (
	"io"
	"os"

	"github.com/arthur-debert/rigup/pkg/bootstrap"
	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/dialog"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// environment is everything a command needs to act on the machine.
type environment struct {
	paths  *paths.Paths
	config *config.Config
	runner runner.Runner
	fs     afero.Fs
	dialog dialog.Dialog
	closer io.Closer
}

func (e *environment) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

func (e *environment) deps() bootstrap.Deps {
	return bootstrap.Deps{
		Config:        e.config,
		Runner:        e.runner,
		FS:            e.fs,
		Dialog:        e.dialog,
		Fetcher:       manifest.HTTPFetcher{},
		ManifestCache: e.paths.ManifestCachePath(),
	}
}

func (o *globalOptions) loadConfig(p *paths.Paths) (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath, true)
	}
	return config.Load(p.ConfigFile(), false)
}

// setup builds the environment for cmd. In dry-run mode commands are only
// printed and file writes land in an in-memory layer over the real tree.
func (o *globalOptions) setup(cmd *cobra.Command) (*environment, error) {
	logger := logging.GetLogger("cli")
	p := paths.New()

	cfg, err := o.loadConfig(p)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("config", cfg.String()).Bool("dryRun", o.dryRun).Msg("Configuration loaded")

	env := &environment{paths: p, config: cfg}

	if o.dryRun {
		env.runner = runner.NewDryRun(cmd.OutOrStdout())
		env.fs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
	} else {
		installLog, err := logging.OpenInstallLog(cfg.Log.InstallFile)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileWrite, MsgErrInstallLog)
		}
		env.closer = installLog
		env.runner = runner.NewExec(installLog)
		env.fs = afero.NewOsFs()
	}

	d, err := dialog.New(cfg.Dialog.Backend, os.Stdin, os.Stdout)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.dialog = d

	return env, nil
}
