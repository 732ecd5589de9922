// Package file provides a TOML file-based implementation of the
// ConfigStore port. Values persist in ~/.inquire/config.toml; nested
// TOML tables are exposed as dot-notation keys.
package file
