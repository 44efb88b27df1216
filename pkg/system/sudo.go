package system

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/spf13/afero"
)

const (
	TempSudoersFile    = "rigup-temp"
	WheelSudoersFile   = "00-rigup-wheel-can-sudo"
	NoPasswdCmdsFile   = "01-rigup-cmds-without-password"
	VisudoEditorFile   = "02-rigup-visudo-editor"
	sudoersPermissions = 0440
)

// NoPasswordCommands may be run by wheel without a password once the
// bootstrap is over.
var NoPasswordCommands = []string{
	"/usr/bin/shutdown",
	"/usr/bin/reboot",
	"/usr/bin/systemctl suspend",
	"/usr/bin/wifi-menu",
	"/usr/bin/mount",
	"/usr/bin/umount",
	"/usr/bin/pacman -Syu",
	"/usr/bin/pacman -Syyu",
	"/usr/bin/pacman -Syyu --noconfirm",
	"/usr/bin/loadkeys",
	"/usr/bin/pacman -Syyuw --noconfirm",
	"/usr/bin/pacman -S -y --config /etc/pacman.conf --",
	"/usr/bin/pacman -S -y -u --config /etc/pacman.conf --",
}

// TemporarySudo lets wheel run anything without a password for the rest of
// the run. The returned cleanup removes the grant and is safe to call more
// than once.
func (s *System) TemporarySudo() (func() error, error) {
	path := filepath.Join(SudoersDir, TempSudoersFile)
	content := "%wheel ALL=(ALL) NOPASSWD: ALL\nDefaults:%wheel,root runcwd=*\n"
	if err := s.writeFile(path, content, sudoersPermissions); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("system.sudo")
	logger.Debug().Str("path", path).Msg("Temporary sudo grant written")

	return func() error {
		if ok, _ := afero.Exists(s.FS, path); !ok {
			return nil
		}
		if err := s.FS.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path)
		}
		return nil
	}, nil
}

// FinalSudoPolicy installs the permanent wheel rules.
func (s *System) FinalSudoPolicy() error {
	files := map[string]string{
		WheelSudoersFile: "%wheel ALL=(ALL:ALL) ALL\n",
		NoPasswdCmdsFile: "%wheel ALL=(ALL:ALL) NOPASSWD: " + strings.Join(NoPasswordCommands, ",") + "\n",
		VisudoEditorFile: "Defaults editor=/usr/bin/nvim\n",
	}
	for name, content := range files {
		if err := s.writeFile(filepath.Join(SudoersDir, name), content, sudoersPermissions); err != nil {
			return err
		}
	}
	return nil
}
