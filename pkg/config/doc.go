// Package config handles configuration management for rigup.
// It layers the embedded defaults, an optional TOML file and RIGUP_
// environment variables with koanf, then decodes the result into Config.
package config
