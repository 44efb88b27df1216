// Package session holds the state shared by every installer during one run.
//
// A Session is built once, after the target user exists, and passed
// explicitly to each installer call. Execution is sequential so nothing in
// it is locked.
package session

import (
	"context"
	"sort"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/runner"
)

// User identifies the account being provisioned.
type User struct {
	Name string
	Home string
}

// Session is the context threaded through installers.
type Session struct {
	User User
	// ScratchDir holds source checkouts; it is owned by User
	ScratchDir string
	// Installed is a snapshot of foreign packages present when the
	// dispatch phase started. See SnapshotInstalled.
	Installed PackageSet
	Progress  Progress
}

// New builds a session for user. scratch may be relative to the user's home.
func New(name, home, scratch string) *Session {
	if home == "" {
		home = paths.UserHome(name)
	}
	return &Session{
		User:       User{Name: name, Home: home},
		ScratchDir: paths.ScratchDir(home, scratch),
		Installed:  NewPackageSet(),
	}
}

// SnapshotInstalled runs query (for example pacman -Qqm) and stores its
// output lines as the installed set. The snapshot is taken once: packages
// installed later in the run are only added by the AUR installer itself.
func (s *Session) SnapshotInstalled(ctx context.Context, r runner.Runner, query []string) error {
	if len(query) == 0 {
		return nil
	}
	res, err := r.Run(ctx, runner.Command{Name: query[0], Args: query[1:]})
	if err != nil {
		return errors.Wrap(err, errors.ErrSubprocessFailed, "failed to list installed packages")
	}
	s.Installed = NewPackageSet(res.Lines()...)
	logger := logging.GetLogger("session")
	logger.Debug().
		Int("count", s.Installed.Len()).
		Msg("Captured installed package snapshot")
	return nil
}

// MarkInstalled records name in the installed set, creating the set for
// sessions not built with New.
func (s *Session) MarkInstalled(name string) {
	if s.Installed == nil {
		s.Installed = NewPackageSet()
	}
	s.Installed.Add(name)
}

// PackageSet is a set of package names. The zero value answers Has but Add
// needs a set from NewPackageSet; Session.MarkInstalled handles both.
type PackageSet map[string]struct{}

func NewPackageSet(names ...string) PackageSet {
	set := make(PackageSet, len(names))
	for _, n := range names {
		set.Add(n)
	}
	return set
}

func (p PackageSet) Has(name string) bool {
	_, ok := p[name]
	return ok
}

func (p PackageSet) Add(name string) {
	if name != "" {
		p[name] = struct{}{}
	}
}

func (p PackageSet) Len() int { return len(p) }

// Names returns the set sorted.
func (p PackageSet) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Progress counts records for operator display only.
type Progress struct {
	Current int
	Total   int
}

// Start resets the counter for a manifest of total records.
func (p *Progress) Start(total int) {
	p.Current = 0
	p.Total = total
}

// Advance moves to the next record and returns its 1-based index.
func (p *Progress) Advance() int {
	p.Current++
	return p.Current
}
