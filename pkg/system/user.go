package system

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
)

var usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)

// ValidateUsername accepts lowercase names that start with a letter or an
// underscore and continue with letters, digits, '_' or '-'.
func ValidateUsername(name string) error {
	if !usernamePattern.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput, "%q is not a valid username", name).
			WithDetail("username", name)
	}
	return nil
}

func PasswordsMatch(a, b string) bool {
	return a != "" && a == b
}

// UserExists asks id(1) about name.
func (s *System) UserExists(ctx context.Context, name string) bool {
	_, err := s.Runner.Run(ctx, runner.Command{Name: "id", Args: []string{"-u", name}})
	return err == nil
}

// EnsureUser creates name in the wheel group with shell, or adds an existing
// account to wheel and reclaims its home. The password is always set.
func (s *System) EnsureUser(ctx context.Context, name, password, shell string) error {
	logger := logging.GetLogger("system.user")

	add := runner.Command{Name: "useradd", Args: []string{"-m", "-g", "wheel", "-s", shell, name}}
	if _, err := s.Runner.Run(ctx, add); err != nil {
		logger.Info().Str("user", name).Msg("User exists, adding to wheel")
		home := filepath.Join("/home", name)
		for _, cmd := range []runner.Command{
			{Name: "usermod", Args: []string{"-a", "-G", "wheel", name}},
			{Name: "mkdir", Args: []string{"-p", home}},
			{Name: "chown", Args: []string{name + ":wheel", home}},
		} {
			if _, err := s.Runner.Run(ctx, cmd); err != nil {
				return errors.Wrapf(err, errors.ErrUserCreate, "failed to prepare existing user %s", name)
			}
		}
	}

	passwd := runner.Command{Name: "chpasswd", Stdin: strings.NewReader(name + ":" + password + "\n")}
	if _, err := s.Runner.Run(ctx, passwd); err != nil {
		return errors.Wrapf(err, errors.ErrUserCreate, "failed to set password for %s", name)
	}

	logger.Info().Str("user", name).Msg("User ready")
	return nil
}

// PrepareScratch creates the session's scratch directory and hands the tree
// above it to the user.
func (s *System) PrepareScratch(ctx context.Context, sess *session.Session) error {
	if err := s.FS.MkdirAll(sess.ScratchDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", sess.ScratchDir)
	}
	chown := runner.Command{Name: "chown", Args: []string{"-R", sess.User.Name + ":wheel", filepath.Dir(sess.ScratchDir)}}
	if _, err := s.Runner.Run(ctx, chown); err != nil {
		return errors.Wrapf(err, errors.ErrSubprocessFailed, "failed to hand %s to %s", sess.ScratchDir, sess.User.Name)
	}
	return nil
}

// DefaultShell makes shell the login shell of root and user and creates the
// zsh history directory.
func (s *System) DefaultShell(ctx context.Context, sess *session.Session, shell string) error {
	for _, who := range []string{"root", sess.User.Name} {
		cmd := runner.Command{Name: "chsh", Args: []string{"-s", shell, who}}
		if _, err := s.Runner.Run(ctx, cmd); err != nil {
			return errors.Wrapf(err, errors.ErrSubprocessFailed, "failed to change shell of %s", who)
		}
	}
	cache := filepath.Join(sess.User.Home, ".cache", "zsh")
	mkdir := runner.Command{Name: "mkdir", Args: []string{"-p", cache}, User: sess.User.Name}
	if _, err := s.Runner.Run(ctx, mkdir); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", cache)
	}
	return nil
}
