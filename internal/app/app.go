// Package app wires pairjump's components together: configuration,
// logging, the dispatcher with the pair handler, and Lua plugins. Every
// front end (CLI, RPC server, viewer) builds one Application.
package app

import (
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/pairjump/internal/config"
	"github.com/dshills/pairjump/internal/dispatcher"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/pairjump/internal/dispatcher/handlers/cursor"
	"github.com/dshills/pairjump/internal/dispatcher/handlers/pair"
	"github.com/dshills/pairjump/internal/dispatcher/hook"
	"github.com/dshills/pairjump/internal/engine"
	"github.com/dshills/pairjump/internal/input"
	"github.com/dshills/pairjump/internal/plugin/lua"
)

// Application holds the wired components.
type Application struct {
	mu sync.RWMutex

	config     *config.Config
	configPath string

	logger *zap.Logger
	level  zap.AtomicLevel

	dispatcher *dispatcher.Dispatcher
	lastMotion *hook.LastMotionHook
	plugins    *lua.Host

	engine *engine.Engine

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the --config flag value; empty uses the default lookup.
	ConfigPath string

	// LogLevel and LogFormat override the config file when set.
	LogLevel  string
	LogFormat string

	// LogOutput receives logs. Defaults to os.Stderr.
	LogOutput io.Writer

	// SkipPlugins does not load the configured plugin files.
	SkipPlugins bool

	// ConfigOptions are passed to config.Load after the path options.
	ConfigOptions []config.Option
}

// New creates an Application and wires all components.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		if app.plugins != nil {
			_ = app.plugins.Close()
		}
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	// 1. Config
	path, explicit := config.ResolvePath(app.opts.ConfigPath)
	cfg, err := app.loadConfig(path, explicit)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg
	app.configPath = path

	// 2. Logging
	logCfg := LoggerConfig{
		Level:  ParseLogLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: app.opts.LogOutput,
	}
	app.logger, app.level, err = NewLogger(logCfg)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logger.Debug("config loaded",
		zap.String("path", path),
		zap.Bool("found", cfg.Source != ""),
	)

	// 3. Dispatcher
	app.dispatcher = dispatcher.New(dispatcher.Config{
		RecoverFromPanic: cfg.Dispatcher.RecoverFromPanic,
		EnableMetrics:    cfg.Dispatcher.EnableMetrics,
		MaxRepeatCount:   cfg.Dispatcher.MaxRepeatCount,
	}, dispatcher.WithLogger(app.logger.Named("dispatcher")))
	app.dispatcher.RegisterNamespace(pair.Namespace, pair.NewHandler())
	app.dispatcher.RegisterNamespace(cursorhandler.Namespace, cursorhandler.NewHandler())

	app.lastMotion = hook.NewLastMotionHook(pair.Namespace, lua.UserNamespace)
	app.dispatcher.RegisterPostHook(app.lastMotion)
	if app.level.Enabled(zap.DebugLevel) {
		timingLog := app.logger.Named("timing")
		app.dispatcher.RegisterHook(hook.NewTimingHook(func(action string, d time.Duration) {
			timingLog.Debug("action timing", zap.String("action", action), zap.Duration("duration", d))
		}))
	}

	// 4. Plugins
	app.plugins = lua.NewHost(app.dispatcher, lua.WithLogger(app.logger.Named("lua")))
	if !app.opts.SkipPlugins {
		for _, p := range cfg.Plugins.Paths {
			if err := app.plugins.LoadFile(p); err != nil {
				return &InitError{Component: "plugins", Err: err}
			}
		}
	}

	return nil
}

func (app *Application) loadConfig(path string, explicit bool) (*config.Config, error) {
	opts := []config.Option{
		config.WithPath(path),
		config.WithRequired(explicit),
	}
	opts = append(opts, app.opts.ConfigOptions...)
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.LogFormat != "" {
		cfg.Log.Format = app.opts.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReloadConfig re-reads the config file and applies the settings that can
// change while running: the log level and the keymap. Dispatcher settings
// and plugins keep their startup values.
func (app *Application) ReloadConfig() (*config.Config, error) {
	app.mu.RLock()
	path := app.configPath
	app.mu.RUnlock()

	cfg, err := app.loadConfig(path, false)
	if err != nil {
		app.logger.Warn("config reload failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	app.level.SetLevel(ParseLogLevel(cfg.Log.Level).ZapLevel())

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.logger.Info("config reloaded", zap.String("path", path))
	return cfg, nil
}

// Dispatch runs an action against the current document.
func (app *Application) Dispatch(action input.Action) handler.Result {
	return app.dispatcher.Dispatch(action)
}

// RepeatLastMotion re-dispatches the last successful pair or user action.
func (app *Application) RepeatLastMotion() handler.Result {
	last, count := app.lastMotion.LastAction()
	if last == nil {
		return handler.NoOpWithMessage("no motion to repeat")
	}
	return app.dispatcher.Dispatch(last.WithCount(count))
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// ConfigPath returns the config file path that was resolved at startup.
// The file may not exist.
func (app *Application) ConfigPath() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.configPath
}

// Logger returns the application logger.
func (app *Application) Logger() *zap.Logger {
	return app.logger
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Plugins returns the Lua plugin host.
func (app *Application) Plugins() *lua.Host {
	return app.plugins
}

// Close releases the plugin state and flushes the logger.
func (app *Application) Close() error {
	var errs []error
	if app.plugins != nil {
		errs = append(errs, app.plugins.Close())
	}
	if app.logger != nil {
		// Sync on stderr fails with EINVAL on some platforms; nothing to report.
		_ = app.logger.Sync()
	}
	return errors.Join(errs...)
}
