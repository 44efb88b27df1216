package installer

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
)

// Official installs from the distribution repositories as root.
type Official struct {
	Runner  runner.Runner
	Command string
	// Args precede the package name, e.g. --noconfirm --needed -S
	Args []string
}

func (o *Official) Install(ctx context.Context, _ *session.Session, id, _ string) (Outcome, error) {
	logger := logging.GetLogger("installer.official")

	cmd := runner.Command{Name: o.Command, Args: withArg(o.Args, id)}
	if _, err := o.Runner.Run(ctx, cmd); err != nil {
		return OutcomeInstalled, errors.Wrapf(err, errors.ErrSubprocessFailed, "%s could not install %s", o.Command, id)
	}

	logger.Info().Str("identifier", id).Msg("Installed from official repository")
	return OutcomeInstalled, nil
}
