// Package manifest reads the list of programs a bootstrap run installs.
//
// The native format is comma-delimited text, one record per line:
//
//	tag,identifier,annotation
//
// tag selects the installer (empty for the official repository, A for the
// AUR, G for a git source build, P for pip). Lines whose first non-blank
// character is '#' are comments. Only the first two commas split fields, so
// the annotation may contain commas while the tag and identifier may not;
// there is no escaping. Manifests that need richer values can be written as
// TOML or YAML instead, selected by file extension.
package manifest
