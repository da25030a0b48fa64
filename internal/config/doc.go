// Package config loads pairjump's configuration.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. the config file, TOML or YAML by extension
//  3. PAIRJUMP_* environment variables
//
// The config file is chosen by ResolvePath: the --config flag, then
// $PAIRJUMP_CONFIG, then $XDG_CONFIG_HOME/pairjump/config.toml (or
// ~/.config/pairjump). A file named explicitly must exist; the default
// file is optional.
//
// Example:
//
//	[log]
//	level = "debug"
//
//	[keymap]
//	"Tab" = "pair.exit"
//	"g" = "user.jump"
//
// Unknown keys are rejected so that typos surface at startup. Environment
// variables map PAIRJUMP_SECTION_KEY to section.key, for example
// PAIRJUMP_DISPATCHER_MAX_REPEAT_COUNT=20.
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources plus DeepMerge
//   - watcher: fsnotify-based change notification for live reload
package config
