package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", false)
	require.NoError(t, err)

	assert.Equal(t, "pacman", cfg.Official.Command)
	assert.Equal(t, []string{"--noconfirm", "--needed", "-S"}, cfg.Official.Args)
	assert.Equal(t, "yay", cfg.AUR.Helper)
	assert.Equal(t, []string{"pacman", "-Qqm"}, cfg.AUR.Query)
	assert.Equal(t, "master", cfg.Git.Branch)
	assert.Equal(t, []string{"make", "install"}, cfg.Git.Install)
	assert.Equal(t, "python-pip", cfg.Pip.Package)
	assert.Equal(t, ".local/src", cfg.User.Scratch)
	assert.Equal(t, 5, cfg.System.ParallelDownloads)
	assert.Contains(t, cfg.Prerequisites, "base-devel")
	assert.False(t, cfg.Pipeline.Strict)
}

func TestLoad_UserFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[aur]
helper = "paru"

[pipeline]
strict = true

[user]
name = "ada"
`), 0644))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "paru", cfg.AUR.Helper)
	assert.True(t, cfg.Pipeline.Strict)
	assert.Equal(t, "ada", cfg.User.Name)
	// Untouched keys keep their defaults
	assert.Equal(t, "pacman", cfg.Official.Command)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[aur]\nhelper = \"paru\"\n"), 0644))

	t.Setenv("RIGUP_AUR__HELPER", "trizen")
	t.Setenv("RIGUP_LOG__INSTALL_FILE", "/tmp/install.log")
	t.Setenv("RIGUP_GIT__BUILD", "make,all")

	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, "trizen", cfg.AUR.Helper)
	assert.Equal(t, "/tmp/install.log", cfg.Log.InstallFile)
	assert.Equal(t, []string{"make", "all"}, cfg.Git.Build)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	_, err := Load(missing, false)
	assert.NoError(t, err)

	_, err = Load(missing, true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[aur\nhelper="), 0644))

	_, err := Load(path, true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidate(t *testing.T) {
	cfg, err := Load("", false)
	require.NoError(t, err)

	bad := *cfg
	bad.AUR.Helper = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Dialog.Backend = "whiptail"
	assert.Error(t, bad.Validate())
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[aur]")
	assert.Contains(t, content, `# helper = "yay"`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented assignment left in generated config: %q", line)
	}
}
