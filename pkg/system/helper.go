package system

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/installer"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/session"
)

// BootstrapHelper builds the AUR helper from its own AUR repository when it
// is not installed yet. Every AUR record depends on it, so failure is fatal.
func (s *System) BootstrapHelper(ctx context.Context, sess *session.Session, helper, repo string) error {
	logger := logging.GetLogger("system.helper")

	if path, err := s.Runner.LookPath(helper); err == nil {
		logger.Debug().Str("helper", helper).Str("path", path).Msg("AUR helper already installed")
		sess.MarkInstalled(helper)
		return nil
	}

	build := &installer.Git{
		Runner: s.Runner,
		Branch: "master",
		Build:  []string{"makepkg", "--noconfirm", "-si"},
	}
	if _, err := build.Install(ctx, sess, repo, ""); err != nil {
		return errors.Wrapf(err, errors.ErrPrerequisiteInstallFailed, "failed to install AUR helper %s", helper).
			WithDetail("repo", repo)
	}

	sess.MarkInstalled(helper)
	logger.Info().Str("helper", helper).Msg("AUR helper installed")
	return nil
}
