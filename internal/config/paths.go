package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/pairjump/internal/config/loader"
)

// EnvConfigPath names the environment variable that points at the config
// file.
const EnvConfigPath = EnvPrefix + "CONFIG"

var configNames = []string{"config.toml", "config.yaml", "config.yml"}

// DefaultDir returns $XDG_CONFIG_HOME/pairjump, or ~/.config/pairjump.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pairjump")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "pairjump")
	}
	return filepath.Join(home, ".config", "pairjump")
}

// DefaultPath returns the first existing config file in DefaultDir,
// falling back to config.toml.
func DefaultPath(fsys loader.FileSystem) string {
	if fsys == nil {
		fsys = loader.DefaultFS()
	}
	dir := DefaultDir()
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := fsys.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, configNames[0])
}

// ResolvePath picks the config file: the flag value, then $PAIRJUMP_CONFIG,
// then DefaultPath. explicit reports whether the user named the file, in
// which case it must exist.
func ResolvePath(flag string) (path string, explicit bool) {
	if flag != "" {
		return ExpandHome(flag), true
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return ExpandHome(env), true
	}
	return DefaultPath(nil), false
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
