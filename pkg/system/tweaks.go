package system

import (
	"context"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/runner"
)

const libinputConfig = `Section "InputClass"
	Identifier "libinput touchpad catchall"
	MatchIsTouchpad "on"
	MatchDevicePath "/dev/input/event*"
	Driver "libinput"
	# Enable left mouse button by tapping
	Option "Tapping" "on"
EndSection
`

// TouchpadTapToClick enables tapping on libinput touchpads.
func (s *System) TouchpadTapToClick() error {
	return s.writeFile(LibinputConf, libinputConfig, 0644)
}

// DisableBell unloads the PC speaker module and keeps it from loading again.
func (s *System) DisableBell(ctx context.Context) error {
	if _, err := s.Runner.Run(ctx, runner.Command{Name: "rmmod", Args: []string{"pcspkr"}}); err != nil {
		logger := logging.GetLogger("system")
		logger.Debug().Err(err).Msg("pcspkr not loaded")
	}
	return s.writeFile(NoBeepConf, "blacklist pcspkr\n", 0644)
}

// DBusMachineID writes a fresh machine id for D-Bus.
func (s *System) DBusMachineID(ctx context.Context) error {
	res, err := s.Runner.Run(ctx, runner.Command{Name: "dbus-uuidgen"})
	if err != nil {
		return errors.Wrap(err, errors.ErrSubprocessFailed, "failed to generate a machine id")
	}
	id := strings.TrimSpace(string(res.Stdout))
	if id == "" {
		return errors.New(errors.ErrSubprocessFailed, "dbus-uuidgen printed nothing")
	}
	return s.writeFile(DBusMachineFile, id+"\n", 0444)
}
