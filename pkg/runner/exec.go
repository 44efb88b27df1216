package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/user"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/rs/zerolog"
)

// Exec runs commands on the local machine.
type Exec struct {
	logger      zerolog.Logger
	log         io.Writer
	currentUser string
}

// NewExec creates a runner that appends command output to log. A nil log
// discards output.
func NewExec(log io.Writer) *Exec {
	if log == nil {
		log = io.Discard
	}
	current := ""
	if u, err := user.Current(); err == nil {
		current = u.Username
	}
	return &Exec{
		logger:      logging.GetLogger("runner.exec"),
		log:         log,
		currentUser: current,
	}
}

// Run executes cmd and waits for it. There is no timeout; ctx cancellation
// kills the process.
func (e *Exec) Run(ctx context.Context, cmd Command) (Result, error) {
	name, args := Argv(cmd, e.currentUser)
	logging.LogCommand(name, args)

	c := exec.CommandContext(ctx, name, args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = os.Environ()
	c.Env = append(c.Env, cmd.Env...)
	c.Stdin = cmd.Stdin

	_, _ = fmt.Fprintf(e.log, "$ %s\n", cmd)

	var stdout bytes.Buffer
	c.Stdout = io.MultiWriter(&stdout, e.log)
	c.Stderr = e.log

	start := time.Now()
	err := c.Run()
	result := Result{Stdout: stdout.Bytes()}

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		e.logger.Debug().
			Err(err).
			Str("command", cmd.String()).
			Str("user", cmd.User).
			Int("exitCode", result.ExitCode).
			Msg("Command failed")
		return result, errors.Wrapf(err, errors.ErrSubprocessFailed, "%s", cmd.Name).
			WithDetail("command", cmd.String()).
			WithDetail("exit_code", result.ExitCode)
	}

	e.logger.Debug().
		Str("command", cmd.String()).
		Dur("duration", time.Since(start)).
		Msg("Command succeeded")
	return result, nil
}

// LookPath reports where name is found on PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DryRun logs commands and reports success without running anything.
type DryRun struct {
	logger zerolog.Logger
	out    io.Writer
}

// NewDryRun prints each command it would run to out.
func NewDryRun(out io.Writer) *DryRun {
	if out == nil {
		out = io.Discard
	}
	return &DryRun{logger: logging.GetLogger("runner.dryrun"), out: out}
}

func (d *DryRun) Run(_ context.Context, cmd Command) (Result, error) {
	prefix := ""
	if cmd.User != "" {
		prefix = "[" + cmd.User + "] "
	}
	if cmd.Dir != "" {
		prefix += "(" + cmd.Dir + ") "
	}
	_, _ = fmt.Fprintf(d.out, "would run: %s%s\n", prefix, cmd)
	d.logger.Info().Str("command", cmd.String()).Msg("Dry run mode - command would be executed")
	return Result{}, nil
}

// LookPath pretends every program exists so dry runs exercise the full path.
func (d *DryRun) LookPath(name string) (string, error) {
	return name, nil
}
