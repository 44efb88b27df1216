package installer

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
)

// AUR installs through the secondary helper as the target user. The helper
// refuses to run as root.
type AUR struct {
	Runner runner.Runner
	Helper string
	Args   []string
}

func (a *AUR) Install(ctx context.Context, sess *session.Session, id, _ string) (Outcome, error) {
	logger := logging.GetLogger("installer.aur")

	if sess.Installed.Has(id) {
		logger.Debug().Str("identifier", id).Msg("Already installed, skipping")
		return OutcomeSkipped, nil
	}

	cmd := runner.Command{Name: a.Helper, Args: withArg(a.Args, id), User: sess.User.Name}
	if _, err := a.Runner.Run(ctx, cmd); err != nil {
		return OutcomeInstalled, errors.Wrapf(err, errors.ErrSubprocessFailed, "%s could not install %s", a.Helper, id)
	}

	sess.MarkInstalled(id)
	logger.Info().Str("identifier", id).Msg("Installed from AUR")
	return OutcomeInstalled, nil
}
