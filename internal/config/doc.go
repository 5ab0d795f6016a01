// Package config handles loading and validation of gitnav configuration.
//
// Configuration is read from ~/.config/gitnav/config.toml (or the file named
// by GITNAV_CONFIG). A missing file is not an error.
//
// # Configuration Sources (highest priority first)
//
//   - GITNAV_ROOT_REF env var: root branch for the ".." parent walk
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - root_ref: branch the parent walk never crosses (default: "master")
//   - max_history: jump history cap (default: 20, max 100)
//   - theme: "default" or "none" for plain output
//
// # Tool Sections
//
//	[lookup]
//	ignore = [".git", "node_modules"]
//	max_results = 50
//
//	[port]
//	record_origin = true  # cherry-pick -x
package config
