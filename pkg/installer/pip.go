package installer

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
)

// Pip installs Python packages. Only pip's own presence is checked; the
// package is reinstalled on every run.
type Pip struct {
	Runner  runner.Runner
	Command string
	// Package provides Command when it is missing
	Package  string
	Args     []string
	Official Installer
}

func (p *Pip) Install(ctx context.Context, sess *session.Session, id, _ string) (Outcome, error) {
	logger := logging.GetLogger("installer.pip")

	if _, err := p.Runner.LookPath(p.Command); err != nil {
		logger.Info().Str("package", p.Package).Msg("pip not found, installing it first")
		if _, err := p.Official.Install(ctx, sess, p.Package, ""); err != nil {
			return OutcomeInstalled, errors.Wrapf(err, errors.ErrSubprocessFailed, "could not install %s for %s", p.Package, id)
		}
	}

	cmd := runner.Command{Name: p.Command, Args: withArg(p.Args, id)}
	if _, err := p.Runner.Run(ctx, cmd); err != nil {
		return OutcomeInstalled, errors.Wrapf(err, errors.ErrSubprocessFailed, "%s could not install %s", p.Command, id)
	}

	logger.Info().Str("identifier", id).Msg("Installed with pip")
	return OutcomeInstalled, nil
}
