package installer

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
)

// Git builds a program from a source repository checked out under the
// session's scratch directory.
type Git struct {
	Runner runner.Runner
	// Branch is pulled when a checkout already exists
	Branch string
	// Build runs as the target user, InstallCmd as root, both inside the checkout
	Build      []string
	InstallCmd []string
}

// CheckoutDir is where url is cloned for sess.
func CheckoutDir(sess *session.Session, url string) string {
	return filepath.Join(sess.ScratchDir, manifest.RepoName(url))
}

func (g *Git) Install(ctx context.Context, sess *session.Session, url, _ string) (Outcome, error) {
	logger := logging.GetLogger("installer.git")
	dir := CheckoutDir(sess, url)

	if err := g.fetch(ctx, sess, url, dir); err != nil {
		return OutcomeInstalled, err
	}

	// Commands run with Dir set; rigup's own working directory never changes.
	if len(g.Build) > 0 {
		build := runner.Command{Name: g.Build[0], Args: g.Build[1:], Dir: dir, User: sess.User.Name}
		if _, err := g.Runner.Run(ctx, build); err != nil {
			return OutcomeInstalled, errors.Wrapf(err, errors.ErrSubprocessFailed, "build of %s failed", url).
				WithDetail("dir", dir)
		}
	}
	if len(g.InstallCmd) > 0 {
		install := runner.Command{Name: g.InstallCmd[0], Args: g.InstallCmd[1:], Dir: dir}
		if _, err := g.Runner.Run(ctx, install); err != nil {
			return OutcomeInstalled, errors.Wrapf(err, errors.ErrSubprocessFailed, "install of %s failed", url).
				WithDetail("dir", dir)
		}
	}

	logger.Info().Str("identifier", url).Str("dir", dir).Msg("Built and installed from source")
	return OutcomeInstalled, nil
}

// fetch clones url into dir. A failed clone, most often because dir is left
// over from an earlier run, falls back to force-pulling the checkout.
func (g *Git) fetch(ctx context.Context, sess *session.Session, url, dir string) error {
	logger := logging.GetLogger("installer.git")

	clone := runner.Command{
		Name: "git",
		Args: []string{"-C", sess.ScratchDir, "clone", "--depth", "1", "--single-branch", "--no-tags", "-q", url, dir},
		User: sess.User.Name,
	}
	_, cloneErr := g.Runner.Run(ctx, clone)
	if cloneErr == nil {
		return nil
	}

	logger.Debug().Err(cloneErr).Str("dir", dir).Msg("Clone failed, updating existing checkout")

	branch := g.Branch
	if branch == "" {
		branch = "master"
	}
	pull := runner.Command{
		Name: "git",
		Args: []string{"-C", dir, "pull", "--force", "origin", branch},
		User: sess.User.Name,
	}
	if _, err := g.Runner.Run(ctx, pull); err != nil {
		return errors.Wrapf(err, errors.ErrSubprocessFailed, "could not clone or update %s", url).
			WithDetail("dir", dir).
			WithDetail("clone_error", cloneErr.Error())
	}
	return nil
}
