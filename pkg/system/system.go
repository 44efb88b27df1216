package system

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/spf13/afero"
)

// Well-known locations on the target machine.
const (
	SudoersDir      = "/etc/sudoers.d"
	PacmanConf      = "/etc/pacman.conf"
	MakepkgConf     = "/etc/makepkg.conf"
	LibinputConf    = "/etc/X11/xorg.conf.d/40-libinput.conf"
	NoBeepConf      = "/etc/modprobe.d/nobeep.conf"
	DBusMachineFile = "/var/lib/dbus/machine-id"
)

// System applies configuration to one machine.
type System struct {
	Runner runner.Runner
	FS     afero.Fs
}

func New(r runner.Runner, fs afero.Fs) *System {
	return &System{Runner: r, FS: fs}
}

func (s *System) writeFile(path, content string, perm os.FileMode) error {
	if err := s.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := afero.WriteFile(s.FS, path, []byte(content), perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return nil
}
