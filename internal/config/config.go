package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/pairjump/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PAIRJUMP_"

// Config is the resolved pairjump configuration.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
	Keymap     Keymap           `toml:"keymap"`
	Plugins    PluginsConfig    `toml:"plugins"`
	Serve      ServeConfig      `toml:"serve"`

	// Source is the file the config was read from, empty when only
	// defaults and environment were used.
	Source string `toml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // console|json
}

// DispatcherConfig mirrors dispatcher.Config.
type DispatcherConfig struct {
	RecoverFromPanic bool `toml:"recover_from_panic"`
	EnableMetrics    bool `toml:"enable_metrics"`
	MaxRepeatCount   int  `toml:"max_repeat_count"`
}

// PluginsConfig lists Lua scripts loaded at startup.
type PluginsConfig struct {
	Paths []string `toml:"paths"`
}

// ServeConfig configures the RPC server.
type ServeConfig struct {
	WatchConfig bool `toml:"watch_config"`
	DebounceMS  int  `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Dispatcher: DispatcherConfig{
			RecoverFromPanic: true,
			MaxRepeatCount:   100,
		},
		Keymap:  DefaultKeymap(),
		Plugins: PluginsConfig{Paths: []string{}},
		Serve: ServeConfig{
			WatchConfig: true,
			DebounceMS:  100,
		},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	path     string
	required bool
	env      bool
	fs       loader.FileSystem
}

// WithPath reads the config file at path on top of the defaults.
func WithPath(path string) Option {
	return func(o *loadOptions) { o.path = path }
}

// WithRequired makes a missing config file an error.
func WithRequired(required bool) Option {
	return func(o *loadOptions) { o.required = required }
}

// WithEnv enables or disables PAIRJUMP_* overrides. Enabled by default.
func WithEnv(enable bool) Option {
	return func(o *loadOptions) { o.env = enable }
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) { o.fs = fsys }
}

// Load resolves the configuration from defaults, the config file, and the
// environment, in increasing priority, and validates the result.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{env: true, fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := Default().toMap()
	if err != nil {
		return nil, err
	}

	var source string
	if o.path != "" {
		fileMap, err := loader.ForPath(o.fs, o.path).LoadFrom(o.path)
		if err != nil {
			return nil, err
		}
		if fileMap == nil && o.required {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
		}
		if fileMap != nil {
			source = o.path
			merged = loader.DeepMerge(merged, fileMap)
		}
	}

	if o.env {
		env := loader.NewEnvLoader(EnvPrefix, "log", "dispatcher", "serve")
		env.AddMapping(EnvPrefix+"ENABLE_METRICS", "dispatcher.enable_metrics")
		envMap, err := env.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, envMap)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}
	cfg.Source = source
	cfg.resolvePluginPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, &ValidationError{
			Path:    "log.format",
			Message: "must be console or json",
			Value:   c.Log.Format,
			Code:    ErrCodeInvalidEnum,
		})
	}
	if c.Dispatcher.MaxRepeatCount < 0 {
		errs = append(errs, &ValidationError{
			Path:    "dispatcher.max_repeat_count",
			Message: "must not be negative",
			Value:   c.Dispatcher.MaxRepeatCount,
			Code:    ErrCodeOutOfRange,
		})
	}
	if c.Serve.DebounceMS < 0 {
		errs = append(errs, &ValidationError{
			Path:    "serve.debounce_ms",
			Message: "must not be negative",
			Value:   c.Serve.DebounceMS,
			Code:    ErrCodeOutOfRange,
		})
	}
	errs = append(errs, c.Keymap.validate()...)

	return errors.Join(errs...)
}

// resolvePluginPaths expands "~" and makes relative plugin paths relative
// to the config file's directory.
func (c *Config) resolvePluginPaths() {
	for i, p := range c.Plugins.Paths {
		p = ExpandHome(p)
		if c.Source != "" && !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(c.Source), p)
		}
		c.Plugins.Paths[i] = p
	}
}

func (c *Config) toMap() (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	m := make(map[string]any)
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	cfg := &Config{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, strict.String())
		}
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
