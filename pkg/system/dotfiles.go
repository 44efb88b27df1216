package system

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
	"github.com/spf13/afero"
)

// DotfilesLeftovers are repository files that do not belong in a home.
var DotfilesLeftovers = []string{".git", "README.md", "LICENSE", "FUNDING.yml"}

// DeployDotfiles clones repo into a temporary directory under the scratch
// directory and copies it over the user's home, overwriting what is there.
func (s *System) DeployDotfiles(ctx context.Context, sess *session.Session, repo, branch string) error {
	logger := logging.GetLogger("system.dotfiles")
	user := sess.User.Name

	tmp, err := afero.TempDir(s.FS, sess.ScratchDir, "dotfiles-")
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create a checkout directory in %s", sess.ScratchDir)
	}
	defer func() {
		if err := s.FS.RemoveAll(tmp); err != nil {
			logger.Warn().Err(err).Str("dir", tmp).Msg("Could not remove dotfiles checkout")
		}
	}()

	args := []string{"-C", sess.ScratchDir, "clone", "--depth", "1", "--single-branch", "--no-tags", "-q", "--recursive"}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	args = append(args, "--recurse-submodules", repo, tmp)

	for _, cmd := range []runner.Command{
		{Name: "chown", Args: []string{user + ":wheel", tmp}},
		{Name: "git", Args: args, User: user},
		{Name: "cp", Args: []string{"-rfT", tmp, sess.User.Home}, User: user},
	} {
		if _, err := s.Runner.Run(ctx, cmd); err != nil {
			return errors.Wrapf(err, errors.ErrSubprocessFailed, "failed to deploy dotfiles from %s", repo)
		}
	}

	for _, name := range DotfilesLeftovers {
		if err := s.FS.RemoveAll(filepath.Join(sess.User.Home, name)); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s from home", name)
		}
	}

	logger.Info().Str("repo", repo).Str("home", sess.User.Home).Msg("Dotfiles deployed")
	return nil
}
