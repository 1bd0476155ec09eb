// Package app wires the calculator components together and runs the
// interactive console menu.
package app

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/calculator/internal/calculator"
	"github.com/dshills/calculator/internal/config"
	"github.com/dshills/calculator/internal/history"
	"github.com/dshills/calculator/internal/operation"
	"github.com/dshills/calculator/internal/plugin/lua"
	"github.com/dshills/calculator/internal/watcher"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	ConfigPath string

	// HistoryFile overrides history.file when non-empty.
	HistoryFile string

	// PluginDir overrides plugins.dir when non-empty.
	PluginDir string

	// LogLevel overrides logging.level when non-empty.
	LogLevel string

	// Debug forces debug logging.
	Debug bool

	// EnvPrefix selects environment overrides; see config.Options.
	EnvPrefix string

	// Input is read by the menu. Defaults to os.Stdin.
	Input io.Reader

	// Output receives menu text. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Clock stamps history entries. Defaults to time.Now.
	Clock func() time.Time
}

// Application owns the calculator, its history and plugin operations for
// one interactive session.
type Application struct {
	config     config.Config
	calculator *calculator.Calculator
	history    *history.History
	plugins    *lua.Host
	watcher    *watcher.Watcher
	logger     *Logger
	session    string

	input  io.Reader
	output io.Writer
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		session: uuid.NewString(),
		input:   opts.Input,
		output:  opts.Output,
	}
	if app.input == nil {
		app.input = os.Stdin
	}
	if app.output == nil {
		app.output = os.Stdout
	}

	if err := app.initConfig(opts); err != nil {
		return nil, err
	}
	app.initLogger(opts)
	app.initCalculator()

	if err := app.initPlugins(); err != nil {
		return nil, err
	}

	app.initHistory(opts)

	app.logger.Info("calculator ready with %d operations, history capacity %d",
		app.calculator.Count(), app.history.Capacity())
	return app, nil
}

// initConfig loads configuration and applies command-line overrides.
func (app *Application) initConfig(opts Options) error {
	cfg, err := config.Load(config.Options{
		Path:      opts.ConfigPath,
		EnvPrefix: opts.EnvPrefix,
	})
	if err != nil {
		return NewComponentError("config", "load", err)
	}

	if opts.HistoryFile != "" {
		cfg.History.File = opts.HistoryFile
	}
	if opts.PluginDir != "" {
		cfg.Plugins.Dir = opts.PluginDir
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return NewComponentError("config", "validate", err)
	}

	app.config = cfg
	return nil
}

func (app *Application) initLogger(opts Options) {
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(app.config.Logging.Level)
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	app.logger = NewLogger(logCfg).WithField("session", app.session)
}

// initCalculator registers the configured built-ins and the logging
// observer.
func (app *Application) initCalculator() {
	app.calculator = calculator.New()

	for _, symbol := range app.config.Operations.Extra {
		// Validate has already rejected unknown symbols.
		op, _ := operation.ByName(symbol)
		app.calculator.Register(op)
	}

	log := app.logger.WithComponent("calculator")
	app.calculator.AddObserver(calculator.ObserverFunc(func(summary string) {
		log.Debug("calculation performed: %s", summary)
	}))
}

// initPlugins loads Lua operations from the plugin directory and the
// explicit script list.
func (app *Application) initPlugins() error {
	cfg := app.config.Plugins
	if cfg.Dir == "" && len(cfg.Scripts) == 0 {
		return nil
	}

	log := app.logger.WithComponent("plugins")
	app.plugins = lua.NewHost(
		lua.WithTimeout(cfg.Timeout),
		lua.WithOutput(app.output),
	)

	var ops []operation.Operation
	if cfg.Dir != "" {
		loaded, err := app.plugins.LoadDir(cfg.Dir)
		if err != nil {
			app.plugins.Close()
			return NewComponentError("plugins", "load "+cfg.Dir, err)
		}
		ops = append(ops, loaded...)
	}
	for _, script := range cfg.Scripts {
		loaded, err := app.plugins.LoadFile(script)
		if err != nil {
			app.plugins.Close()
			return NewComponentError("plugins", "load "+script, err)
		}
		ops = append(ops, loaded...)
	}

	app.registerPlugins(ops)

	if cfg.Watch && cfg.Dir != "" {
		w, err := watcher.New(".lua")
		if err != nil {
			app.plugins.Close()
			return NewComponentError("plugins", "watch", err)
		}
		if err := w.Add(cfg.Dir); err != nil {
			w.Close()
			app.plugins.Close()
			return NewComponentError("plugins", "watch "+cfg.Dir, err)
		}
		app.watcher = w
		log.Info("watching %s for plugin changes", cfg.Dir)
	}
	return nil
}

func (app *Application) registerPlugins(ops []operation.Operation) {
	log := app.logger.WithComponent("plugins")
	for _, op := range ops {
		if _, exists := app.calculator.Lookup(op.Symbol()); exists {
			log.Warn("plugin operation %q replaces an existing operation", op.Symbol())
		}
		app.calculator.Register(op)
		log.Info("registered plugin operation %q", op.Symbol())
	}
}

// reloadPlugins loads scripts that were created or modified since the
// last call. Operations from removed scripts stay registered.
func (app *Application) reloadPlugins() {
	if app.watcher == nil {
		return
	}

	log := app.logger.WithComponent("plugins")
	events, err := app.watcher.Poll()
	if err != nil {
		log.Warn("watching %s: %v", app.config.Plugins.Dir, err)
	}

	for _, ev := range events {
		if ev.Op.Removed() {
			log.Info("plugin %s removed; its operations stay registered", ev.Path)
			continue
		}

		ops, err := app.plugins.LoadFile(ev.Path)
		if err != nil {
			log.Warn("reloading %s: %v", ev.Path, err)
			continue
		}
		app.registerPlugins(ops)
	}
}

func (app *Application) initHistory(opts Options) {
	app.history = history.New(
		history.WithCapacity(app.config.History.Capacity),
		history.WithClock(opts.Clock),
	)
	app.calculator.AddObserver(app.history)
}

// Close stops the plugin watcher and releases plugin resources.
func (app *Application) Close() error {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			return NewComponentError("plugins", "close watcher", err)
		}
		app.watcher = nil
	}
	if app.plugins == nil {
		return nil
	}
	if err := app.plugins.Close(); err != nil {
		return NewComponentError("plugins", "close", err)
	}
	app.plugins = nil
	return nil
}
