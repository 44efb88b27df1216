package runner

import (
	"context"
	"io"
	"strings"
)

// Command describes one external program invocation.
type Command struct {
	Name string
	Args []string
	// Env holds extra KEY=VALUE pairs on top of the inherited environment
	Env []string
	// Dir is the working directory; empty means the current one
	Dir string
	// User runs the command as another account through sudo
	User  string
	Stdin io.Reader
}

// String renders the command line without user or environment.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is what callers may rely on after a command ran.
type Result struct {
	ExitCode int
	Stdout   []byte
}

// Lines splits captured stdout into trimmed, non-empty lines.
func (r Result) Lines() []string {
	var lines []string
	for _, line := range strings.Split(string(r.Stdout), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Runner executes commands. A non-zero exit is reported as an error with
// code SUBPROCESS_FAILED; the Result still carries the exit code.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}

// Argv returns the program and arguments actually executed for cmd when the
// process runs as currentUser. Commands for another user are wrapped in
// sudo with the target's HOME; extra environment is passed through env(1)
// because sudo resets it.
func Argv(cmd Command, currentUser string) (string, []string) {
	if cmd.User == "" || cmd.User == currentUser {
		return cmd.Name, cmd.Args
	}
	args := []string{"-u", cmd.User, "-H", "--"}
	if len(cmd.Env) > 0 {
		args = append(args, "env")
		args = append(args, cmd.Env...)
	}
	args = append(args, cmd.Name)
	args = append(args, cmd.Args...)
	return "sudo", args
}
