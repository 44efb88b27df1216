package system

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner/runnertest"
	"github.com/arthur-debert/rigup/pkg/session"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem() (*System, *runnertest.Fake, afero.Fs) {
	r := runnertest.New()
	fs := afero.NewMemMapFs()
	return New(r, fs), r, fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"ada", true},
		{"_svc", true},
		{"ada-l_2", true},
		{"Ada", false},
		{"2ada", false},
		{"", false},
		{"ada lovelace", false},
		{"-ada", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			}
		})
	}
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("s3cret", "s3cret"))
	assert.False(t, PasswordsMatch("s3cret", "secret"))
	assert.False(t, PasswordsMatch("", ""))
}

func TestEnsureUser_New(t *testing.T) {
	s, r, _ := newSystem()

	require.NoError(t, s.EnsureUser(context.Background(), "ada", "hunter2", "/bin/zsh"))

	assert.Equal(t, []string{"useradd -m -g wheel -s /bin/zsh ada", "chpasswd"}, r.Commands())
	assert.Equal(t, "ada:hunter2\n", r.Stdin[1])
}

func TestEnsureUser_Existing(t *testing.T) {
	s, r, _ := newSystem()
	r.Fail("useradd")

	require.NoError(t, s.EnsureUser(context.Background(), "ada", "hunter2", "/bin/zsh"))

	assert.Equal(t, []string{
		"useradd -m -g wheel -s /bin/zsh ada",
		"usermod -a -G wheel ada",
		"mkdir -p /home/ada",
		"chown ada:wheel /home/ada",
		"chpasswd",
	}, r.Commands())
}

func TestEnsureUser_Failure(t *testing.T) {
	s, r, _ := newSystem()
	r.Fail("chpasswd")

	err := s.EnsureUser(context.Background(), "ada", "hunter2", "/bin/zsh")

	assert.True(t, errors.IsErrorCode(err, errors.ErrUserCreate))
	assert.True(t, errors.IsFatal(err))
}

func TestUserExists(t *testing.T) {
	s, r, _ := newSystem()
	assert.True(t, s.UserExists(context.Background(), "ada"))

	r.Fail("id -u")
	assert.False(t, s.UserExists(context.Background(), "bob"))
}

func TestPrepareScratch(t *testing.T) {
	s, r, fs := newSystem()
	sess := session.New("ada", "/home/ada", "")

	require.NoError(t, s.PrepareScratch(context.Background(), sess))

	ok, err := afero.DirExists(fs, "/home/ada/.local/src")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"chown -R ada:wheel /home/ada/.local"}, r.Commands())
}

func TestDefaultShell(t *testing.T) {
	s, r, _ := newSystem()
	sess := session.New("ada", "/home/ada", "")

	require.NoError(t, s.DefaultShell(context.Background(), sess, "/bin/zsh"))

	assert.Equal(t, []string{
		"chsh -s /bin/zsh root",
		"chsh -s /bin/zsh ada",
		"mkdir -p /home/ada/.cache/zsh",
	}, r.Commands())
	assert.Equal(t, "ada", r.Calls[2].User)
}

func TestTemporarySudo(t *testing.T) {
	s, _, fs := newSystem()
	path := filepath.Join(SudoersDir, TempSudoersFile)

	cleanup, err := s.TemporarySudo()
	require.NoError(t, err)

	assert.Contains(t, readFile(t, fs, path), "%wheel ALL=(ALL) NOPASSWD: ALL")
	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0440), info.Mode().Perm())

	require.NoError(t, cleanup())
	ok, _ := afero.Exists(fs, path)
	assert.False(t, ok)

	assert.NoError(t, cleanup(), "second cleanup is a no-op")
}

func TestFinalSudoPolicy(t *testing.T) {
	s, _, fs := newSystem()

	require.NoError(t, s.FinalSudoPolicy())

	assert.Equal(t, "%wheel ALL=(ALL:ALL) ALL\n", readFile(t, fs, filepath.Join(SudoersDir, WheelSudoersFile)))
	cmds := readFile(t, fs, filepath.Join(SudoersDir, NoPasswdCmdsFile))
	assert.True(t, strings.HasPrefix(cmds, "%wheel ALL=(ALL:ALL) NOPASSWD: /usr/bin/shutdown,"))
	assert.Contains(t, cmds, "/usr/bin/pacman -Syu,")
	assert.Contains(t, readFile(t, fs, filepath.Join(SudoersDir, VisudoEditorFile)), "editor=")
}
