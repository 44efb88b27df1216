package system

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/spf13/afero"
)

var (
	colorLine     = regexp.MustCompile(`^#?\s*Color\s*$`)
	candyLine     = regexp.MustCompile(`^#?\s*ILoveCandy\s*$`)
	parallelLine  = regexp.MustCompile(`^#?\s*ParallelDownloads\s*=.*$`)
	makeflagsLine = regexp.MustCompile(`^#?\s*MAKEFLAGS=.*$`)
)

// RefreshKeyring reinstalls the archive keyring so signatures of recently
// rotated packager keys verify.
func (s *System) RefreshKeyring(ctx context.Context) error {
	cmd := runner.Command{Name: "pacman", Args: []string{"--noconfirm", "-S", "archlinux-keyring"}}
	if _, err := s.Runner.Run(ctx, cmd); err != nil {
		return errors.Wrap(err, errors.ErrSubprocessFailed, "failed to refresh the keyring")
	}
	return nil
}

// SyncTime sets the clock once; failure is only logged since signature
// checks are the only thing that suffers from a skewed clock.
func (s *System) SyncTime(ctx context.Context) {
	if _, err := s.Runner.Run(ctx, runner.Command{Name: "ntpd", Args: []string{"-q", "-g"}}); err != nil {
		logger := logging.GetLogger("system")
		logger.Warn().Err(err).Msg("Could not synchronise the clock")
	}
}

// TweakPacman turns on colour, the candy progress bar and parallel downloads
// in pacman.conf. Running it twice leaves the file unchanged.
func (s *System) TweakPacman(parallel int) error {
	return s.editLines(PacmanConf, func(lines []string) []string {
		return tweakPacmanLines(lines, parallel)
	})
}

// TweakMakepkg makes makepkg build on every core.
func (s *System) TweakMakepkg() error {
	return s.editLines(MakepkgConf, func(lines []string) []string {
		want := `MAKEFLAGS="-j$(nproc)"`
		for i, l := range lines {
			if makeflagsLine.MatchString(l) {
				lines[i] = want
				return lines
			}
		}
		return append(lines, want)
	})
}

func tweakPacmanLines(lines []string, parallel int) []string {
	out := make([]string, 0, len(lines)+2)
	seenParallel := false
	seenColor := false
	optionsAt := -1

	for _, l := range lines {
		switch {
		case candyLine.MatchString(l):
			// re-added right after Color
			continue
		case colorLine.MatchString(l):
			out = append(out, "Color", "ILoveCandy")
			seenColor = true
			continue
		case parallel > 0 && parallelLine.MatchString(l):
			out = append(out, fmt.Sprintf("ParallelDownloads = %d", parallel))
			seenParallel = true
			continue
		case strings.TrimSpace(l) == "[options]":
			optionsAt = len(out)
		}
		out = append(out, l)
	}

	var missing []string
	if !seenColor {
		missing = append(missing, "Color", "ILoveCandy")
	}
	if parallel > 0 && !seenParallel {
		missing = append(missing, fmt.Sprintf("ParallelDownloads = %d", parallel))
	}
	if len(missing) == 0 {
		return out
	}
	if optionsAt < 0 {
		return append(append(out, "[options]"), missing...)
	}
	at := optionsAt + 1
	result := make([]string, 0, len(out)+len(missing))
	result = append(result, out[:at]...)
	result = append(result, missing...)
	return append(result, out[at:]...)
}

// editLines rewrites path through edit, keeping a trailing newline.
func (s *System) editLines(path string, edit func([]string) []string) error {
	data, err := afero.ReadFile(s.FS, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "failed to read %s", path)
	}
	info, err := s.FS.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "failed to stat %s", path)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	content := strings.Join(edit(lines), "\n") + "\n"
	if content == string(data) {
		return nil
	}
	return s.writeFile(path, content, info.Mode().Perm())
}
