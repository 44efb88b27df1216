package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("RIGUP_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("RIGUP_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("RIGUP_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("RIGUP_DIALOG__BACKEND", "plain")
	t.Setenv("NO_COLOR", "1")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "progs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rigup version dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestNoCommand(t *testing.T) {
	isolate(t)
	_, err := execute(t)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTopics(t *testing.T) {
	isolate(t)

	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "manifest")
	assert.Contains(t, out, "failures")
	assert.Contains(t, out, "--dry-run")

	out, err = execute(t, "topics", "manifest")
	require.NoError(t, err)
	assert.Contains(t, out, "Package manifest")

	_, err = execute(t, "topics", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestHelpTopic(t *testing.T) {
	isolate(t)
	out, err := execute(t, "help", "failures")
	require.NoError(t, err)
	assert.Contains(t, out, "install log")
}

func TestManifestCheck(t *testing.T) {
	dir := isolate(t)
	path := writeManifest(t, dir, "#TAG,NAME,PURPOSE\n,htop,\"is a viewer\"\nA,lf-git,files\n")

	out, err := execute(t, "manifest", "check", path)

	require.NoError(t, err)
	assert.Contains(t, out, "htop is a viewer")
	assert.Contains(t, out, "lf-git")
	assert.Contains(t, out, "2 records")
}

func TestManifestCheck_Invalid(t *testing.T) {
	dir := isolate(t)
	path := writeManifest(t, dir, ",htop,ok\njust-one-field\n")

	out, err := execute(t, "manifest", "check", path)

	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid))
	assert.Equal(t, 2, errors.GetErrorDetails(err)["line"])
	assert.Contains(t, out, "htop")
	assert.Contains(t, out, "INVALID  just-one-field")
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "conf", "rigup.toml")

	out, err := execute(t, "config", "init", "--config", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[aur]")
	assert.Contains(t, string(data), `# helper = "yay"`)

	_, err = execute(t, "config", "init", "--config", target)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = execute(t, "config", "init", "--config", target, "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	t.Setenv("RIGUP_AUR__HELPER", "paru")

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[aur]")
	assert.Contains(t, out, "helper = 'paru'")
}

func TestInstall_DryRun(t *testing.T) {
	dir := isolate(t)
	path := writeManifest(t, dir, ",htop,viewer\nG,https://example.com/foo.git,\n")

	out, err := execute(t, "--dry-run", "install", "--user", "ada", "--manifest", path)

	require.NoError(t, err)
	assert.Contains(t, out, "would run: pacman -Qqm")
	assert.Contains(t, out, "would run: pacman --noconfirm --needed -S htop")
	assert.Contains(t, out, "would run: [ada] git -C /home/ada/.local/src clone")
	assert.Contains(t, out, "would run: [ada] (/home/ada/.local/src/foo) make")
	assert.Contains(t, out, "2 installed")
	assert.Contains(t, out, "DRY RUN MODE")

	_, err = os.Stat(filepath.Join(dir, "cache", "progs.csv"))
	assert.True(t, os.IsNotExist(err), "dry runs do not write the manifest cache")
}

func TestInstall_RequiresUser(t *testing.T) {
	isolate(t)
	_, err := execute(t, "--dry-run", "install")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
