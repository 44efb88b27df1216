package config

// Config is the decoded rigup configuration.
type Config struct {
	Prerequisites []string       `koanf:"prerequisites" toml:"prerequisites"`
	Manifest      ManifestConfig `koanf:"manifest" toml:"manifest"`
	User          UserConfig     `koanf:"user" toml:"user"`
	Official      OfficialConfig `koanf:"official" toml:"official"`
	AUR           AURConfig      `koanf:"aur" toml:"aur"`
	Git           GitConfig      `koanf:"git" toml:"git"`
	Pip           PipConfig      `koanf:"pip" toml:"pip"`
	Dotfiles      DotfilesConfig `koanf:"dotfiles" toml:"dotfiles"`
	Pipeline      PipelineConfig `koanf:"pipeline" toml:"pipeline"`
	Dialog        DialogConfig   `koanf:"dialog" toml:"dialog"`
	Log           LogConfig      `koanf:"log" toml:"log"`
	System        SystemConfig   `koanf:"system" toml:"system"`
}

// ManifestConfig locates the package manifest.
type ManifestConfig struct {
	Local string `koanf:"local" toml:"local"`
	URL   string `koanf:"url" toml:"url"`
}

// UserConfig describes the account being provisioned.
type UserConfig struct {
	Name    string `koanf:"name" toml:"name"`
	Shell   string `koanf:"shell" toml:"shell"`
	Scratch string `koanf:"scratch" toml:"scratch"`
}

// OfficialConfig drives the system package manager.
type OfficialConfig struct {
	Command string   `koanf:"command" toml:"command"`
	Args    []string `koanf:"args" toml:"args"`
}

// AURConfig drives the secondary helper.
type AURConfig struct {
	Helper string   `koanf:"helper" toml:"helper"`
	Repo   string   `koanf:"repo" toml:"repo"`
	Args   []string `koanf:"args" toml:"args"`
	// Query lists already installed foreign packages, one per line
	Query []string `koanf:"query" toml:"query"`
}

// GitConfig drives source builds.
type GitConfig struct {
	Branch  string   `koanf:"branch" toml:"branch"`
	Build   []string `koanf:"build" toml:"build"`
	Install []string `koanf:"install" toml:"install"`
}

// PipConfig drives the language package manager.
type PipConfig struct {
	Command string   `koanf:"command" toml:"command"`
	Package string   `koanf:"package" toml:"package"`
	Args    []string `koanf:"args" toml:"args"`
}

// DotfilesConfig locates the dotfiles repository.
type DotfilesConfig struct {
	Repo   string `koanf:"repo" toml:"repo"`
	Branch string `koanf:"branch" toml:"branch"`
}

type PipelineConfig struct {
	Strict bool `koanf:"strict" toml:"strict"`
}

type DialogConfig struct {
	Backend string `koanf:"backend" toml:"backend"`
}

type LogConfig struct {
	InstallFile string `koanf:"install_file" toml:"install_file"`
}

// SystemConfig toggles the one-shot system tweaks.
type SystemConfig struct {
	ParallelDownloads int  `koanf:"parallel_downloads" toml:"parallel_downloads"`
	TapToClick        bool `koanf:"tap_to_click" toml:"tap_to_click"`
	DisableBell       bool `koanf:"disable_bell" toml:"disable_bell"`
}
