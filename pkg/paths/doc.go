// Package paths provides centralized path handling for rigup.
//
// rigup follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/rigup (config.toml)
//   - Cache: $XDG_CACHE_HOME/rigup (the fetched manifest copy)
//   - State: $XDG_STATE_HOME/rigup (rigup.log, install.log)
//
// # Environment Variables
//
//   - RIGUP_CONFIG_DIR: Override the config directory
//   - RIGUP_CACHE_DIR: Override the cache directory
//   - RIGUP_STATE_DIR: Override the state directory
//
// Paths that belong to the target user (home, scratch directory for source
// checkouts) are derived from that user's home rather than the invoking
// process, since bootstrap runs as root.
package paths
