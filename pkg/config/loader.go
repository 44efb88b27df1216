package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read into configuration.
// RIGUP_AUR__HELPER=paru sets aur.helper.
const EnvPrefix = "RIGUP_"

// Load builds the configuration from, in order of increasing precedence:
// embedded defaults, the TOML file at path, and RIGUP_ environment
// variables. A missing file is fine unless required is set.
func Load(path string, required bool) (*Config, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load user config if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
		} else if required {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path)
		}
	}

	// 3. Load env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps RIGUP_SECTION__KEY_NAME to section.key_name.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate rejects configurations no installer could work with.
func (c *Config) Validate() error {
	checks := []struct {
		key   string
		empty bool
	}{
		{"official.command", c.Official.Command == ""},
		{"aur.helper", c.AUR.Helper == ""},
		{"pip.command", c.Pip.Command == ""},
		{"git.build", len(c.Git.Build) == 0},
	}
	for _, check := range checks {
		if check.empty {
			return errors.Newf(errors.ErrConfigParse, "%s must not be empty", check.key)
		}
	}
	switch c.Dialog.Backend {
	case "", "auto", "terminal", "plain":
	default:
		return errors.Newf(errors.ErrConfigParse, "dialog.backend %q is not one of auto, terminal, plain", c.Dialog.Backend)
	}
	return nil
}

// GenerateConfigContent returns the defaults with every assignment commented
// out, suitable for seeding a user config.toml.
func GenerateConfigContent() string {
	lines := strings.Split(GetDefaultsContent(), "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}

// String renders a short description for logs.
func (c *Config) String() string {
	return fmt.Sprintf("user=%q manifest=%q helper=%q strict=%t", c.User.Name, c.Manifest.Local, c.AUR.Helper, c.Pipeline.Strict)
}
