package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	assert.Equal(t, "make", Command{Name: "make"}.String())
	assert.Equal(t, "pacman --noconfirm -S htop", Command{Name: "pacman", Args: []string{"--noconfirm", "-S", "htop"}}.String())
}

func TestResultLines(t *testing.T) {
	r := Result{Stdout: []byte("yay\n  lf-git \n\nsc-im\n")}
	assert.Equal(t, []string{"yay", "lf-git", "sc-im"}, r.Lines())
	assert.Empty(t, Result{}.Lines())
}

func TestArgv(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		current  string
		wantName string
		wantArgs []string
	}{
		{
			name:     "no user runs directly",
			cmd:      Command{Name: "pacman", Args: []string{"-S", "git"}},
			current:  "root",
			wantName: "pacman",
			wantArgs: []string{"-S", "git"},
		},
		{
			name:     "same user runs directly",
			cmd:      Command{Name: "yay", Args: []string{"-S", "lf"}, User: "ada"},
			current:  "ada",
			wantName: "yay",
			wantArgs: []string{"-S", "lf"},
		},
		{
			name:     "other user goes through sudo",
			cmd:      Command{Name: "yay", Args: []string{"-S", "lf"}, User: "ada"},
			current:  "root",
			wantName: "sudo",
			wantArgs: []string{"-u", "ada", "-H", "--", "yay", "-S", "lf"},
		},
		{
			name:     "env is passed through env(1)",
			cmd:      Command{Name: "make", User: "ada", Env: []string{"MAKEFLAGS=-j4"}},
			current:  "root",
			wantName: "sudo",
			wantArgs: []string{"-u", "ada", "-H", "--", "env", "MAKEFLAGS=-j4", "make"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args := Argv(tt.cmd, tt.current)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func requireProgram(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestExec_CapturesAndLogsOutput(t *testing.T) {
	requireProgram(t, "sh")

	var log bytes.Buffer
	r := NewExec(&log)

	result, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "out\n", string(result.Stdout))
	assert.Contains(t, log.String(), "$ sh -c")
	assert.Contains(t, log.String(), "out")
	assert.Contains(t, log.String(), "err")
}

func TestExec_NonZeroExit(t *testing.T) {
	requireProgram(t, "sh")

	r := NewExec(nil)
	result, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}})

	require.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocessFailed))
	assert.Equal(t, 3, errors.GetErrorDetails(err)["exit_code"])
}

func TestExec_WorkingDirAndStdin(t *testing.T) {
	requireProgram(t, "sh")

	dir := t.TempDir()
	r := NewExec(nil)
	result, err := r.Run(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", "pwd; cat"},
		Dir:   dir,
		Stdin: strings.NewReader("fed"),
	})
	require.NoError(t, err)

	out := string(result.Stdout)
	assert.Contains(t, out, dir)
	assert.Contains(t, out, "fed")
}

func TestExec_MissingProgram(t *testing.T) {
	r := NewExec(nil)
	result, err := r.Run(context.Background(), Command{Name: "rigup-definitely-missing"})

	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocessFailed))
}

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	r := NewDryRun(&out)

	_, err := r.Run(context.Background(), Command{Name: "pacman", Args: []string{"-S", "htop"}, User: "ada", Dir: "/tmp"})
	require.NoError(t, err)
	assert.Equal(t, "would run: [ada] (/tmp) pacman -S htop\n", out.String())

	path, err := r.LookPath("pip")
	require.NoError(t, err)
	assert.Equal(t, "pip", path)
}
