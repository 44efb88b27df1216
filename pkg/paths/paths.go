package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	EnvConfigDir = "RIGUP_CONFIG_DIR"
	EnvCacheDir  = "RIGUP_CACHE_DIR"
	EnvStateDir  = "RIGUP_STATE_DIR"
)

// Fixed names inside rigup's own directories. These are not user-configurable.
const (
	AppDirName = "rigup"

	ConfigFileName = "config.toml"

	// ManifestCacheName is the scratch copy of whichever manifest the run used
	ManifestCacheName = "progs.csv"

	// DefaultScratchDir is relative to the target user's home
	DefaultScratchDir = ".local/src"
)

// Paths resolves rigup's directories once, honouring overrides.
type Paths struct {
	configDir string
	cacheDir  string
	stateDir  string
}

// New resolves directories from the environment.
func New() *Paths {
	return &Paths{
		configDir: fromEnv(EnvConfigDir, filepath.Join(xdg.ConfigHome, AppDirName)),
		cacheDir:  fromEnv(EnvCacheDir, filepath.Join(xdg.CacheHome, AppDirName)),
		stateDir:  fromEnv(EnvStateDir, filepath.Join(xdg.StateHome, AppDirName)),
	}
}

func fromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return filepath.Clean(v)
	}
	return fallback
}

// StateDir holds rigup.log and, unless configured otherwise, install.log.
func (p *Paths) StateDir() string { return p.stateDir }

// ConfigFile is the default user configuration file location.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// ManifestCachePath is where a fetched or copied manifest is kept for the
// duration of a run. Re-running overwrites it.
func (p *Paths) ManifestCachePath() string {
	return filepath.Join(p.cacheDir, ManifestCacheName)
}

// ExpandHome replaces a leading "~" or "~/" with home. Other paths are
// returned cleaned.
func ExpandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case path == "":
		return ""
	}
	return filepath.Clean(path)
}

// ScratchDir resolves the source-checkout directory for a user. A relative
// dir is taken from the user's home.
func ScratchDir(home, dir string) string {
	if dir == "" {
		dir = DefaultScratchDir
	}
	dir = ExpandHome(dir, home)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(home, dir)
}

// UserHome returns the conventional home directory for a user name.
func UserHome(name string) string {
	if name == "root" {
		return "/root"
	}
	return filepath.Join("/home", name)
}
