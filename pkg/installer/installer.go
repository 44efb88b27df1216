package installer

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/arthur-debert/rigup/pkg/session"
)

// Outcome tells the caller whether an installer did any work.
type Outcome int

const (
	OutcomeInstalled Outcome = iota
	OutcomeSkipped
)

func (o Outcome) String() string {
	if o == OutcomeSkipped {
		return "skipped"
	}
	return "installed"
}

// Installer installs one program identified as in the manifest.
type Installer interface {
	Install(ctx context.Context, sess *session.Session, id, annotation string) (Outcome, error)
}

var (
	_ Installer = (*Official)(nil)
	_ Installer = (*AUR)(nil)
	_ Installer = (*Git)(nil)
	_ Installer = (*Pip)(nil)
)

// Set holds one installer per tag.
type Set struct {
	Official Installer
	AUR      Installer
	Git      Installer
	Pip      Installer
}

// For returns the installer for tag. Every Tag value is listed; anything
// outside the enum falls back to Official.
func (s Set) For(tag manifest.Tag) Installer {
	switch tag {
	case manifest.TagOfficial:
		return s.Official
	case manifest.TagAUR:
		return s.AUR
	case manifest.TagGit:
		return s.Git
	case manifest.TagPip:
		return s.Pip
	default:
		return s.Official
	}
}

// NewSet wires the installers from configuration.
func NewSet(r runner.Runner, cfg *config.Config) Set {
	official := &Official{
		Runner:  r,
		Command: cfg.Official.Command,
		Args:    cfg.Official.Args,
	}
	return Set{
		Official: official,
		AUR: &AUR{
			Runner: r,
			Helper: cfg.AUR.Helper,
			Args:   cfg.AUR.Args,
		},
		Git: &Git{
			Runner:     r,
			Branch:     cfg.Git.Branch,
			Build:      cfg.Git.Build,
			InstallCmd: cfg.Git.Install,
		},
		Pip: &Pip{
			Runner:   r,
			Command:  cfg.Pip.Command,
			Package:  cfg.Pip.Package,
			Args:     cfg.Pip.Args,
			Official: official,
		},
	}
}

func withArg(args []string, extra ...string) []string {
	out := make([]string, 0, len(args)+len(extra))
	out = append(out, args...)
	return append(out, extra...)
}
