// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner"
)

type response struct {
	prefix string
	result runner.Result
	err    error
}

// Fake records every command and answers from scripted responses. Commands
// with no matching response succeed with empty output.
type Fake struct {
	Calls []runner.Command
	// Stdin captures whatever each call was fed, in call order
	Stdin []string

	responses []response
	paths     map[string]string
}

// New returns a Fake where no program is on PATH.
func New() *Fake {
	return &Fake{paths: make(map[string]string)}
}

// On scripts the reply for commands whose command line starts with prefix.
// The first registered match wins.
func (f *Fake) On(prefix string, result runner.Result, err error) *Fake {
	f.responses = append(f.responses, response{prefix: prefix, result: result, err: err})
	return f
}

// Fail makes commands starting with prefix exit with status 1.
func (f *Fake) Fail(prefix string) *Fake {
	err := errors.Newf(errors.ErrSubprocessFailed, "%s: exit status 1", prefix).
		WithDetail("exit_code", 1)
	return f.On(prefix, runner.Result{ExitCode: 1}, err)
}

// Output makes commands starting with prefix print stdout.
func (f *Fake) Output(prefix, stdout string) *Fake {
	return f.On(prefix, runner.Result{Stdout: []byte(stdout)}, nil)
}

// Installed puts name on the fake PATH.
func (f *Fake) Installed(name string) *Fake {
	f.paths[name] = "/usr/bin/" + name
	return f
}

func (f *Fake) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	f.Calls = append(f.Calls, cmd)
	in := ""
	if cmd.Stdin != nil {
		data, _ := io.ReadAll(cmd.Stdin)
		in = string(data)
	}
	f.Stdin = append(f.Stdin, in)

	line := cmd.String()
	for _, r := range f.responses {
		if strings.HasPrefix(line, r.prefix) {
			return r.result, r.err
		}
	}
	return runner.Result{}, nil
}

func (f *Fake) LookPath(name string) (string, error) {
	if p, ok := f.paths[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// Commands returns the command lines run so far.
func (f *Fake) Commands() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// Count returns how many calls started with prefix.
func (f *Fake) Count(prefix string) int {
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps scripted responses.
func (f *Fake) Reset() {
	f.Calls = nil
	f.Stdin = nil
}
