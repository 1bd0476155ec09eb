package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/dshills/calculator/internal/config/loader"
	"github.com/dshills/calculator/internal/operation"
)

// Config is the complete calculator configuration.
type Config struct {
	Logging    LoggingConfig
	History    HistoryConfig
	Operations OperationsConfig
	Plugins    PluginsConfig
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
}

// HistoryConfig controls the calculation history.
type HistoryConfig struct {
	// Capacity is the number of calculations kept.
	Capacity int

	// File is the export target for the save menu option.
	File string
}

// OperationsConfig selects built-in operations beyond the defaults.
type OperationsConfig struct {
	// Extra lists built-in symbols registered after + - * / ^.
	Extra []string
}

// PluginsConfig locates Lua operation plugins.
type PluginsConfig struct {
	// Dir is scanned for *.lua files. Empty disables directory loading.
	Dir string

	// Scripts are loaded after the files found in Dir.
	Scripts []string

	// Timeout bounds a single plugin operation call.
	Timeout time.Duration

	// Watch reloads scripts in Dir when they change.
	Watch bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Capacity: 10,
			File:     "historia.txt",
		},
		Operations: OperationsConfig{
			Extra: []string{"sqrt", "%", "abs"},
		},
		Plugins: PluginsConfig{
			Timeout: time.Second,
		},
	}
}

// Options controls where Load reads configuration from.
type Options struct {
	// Path is a TOML or YAML file. Empty skips the file layer.
	Path string

	// FS is used to read Path. Defaults to the OS file system.
	FS loader.FileSystem

	// EnvPrefix selects environment variables. Defaults to
	// loader.DefaultEnvPrefix; "-" disables the environment layer.
	EnvPrefix string
}

// Load builds a Config from defaults, the optional file and the
// environment, then validates it.
func Load(opts Options) (Config, error) {
	var layers []loader.Loader

	if opts.Path != "" {
		l, err := loader.ForFile(opts.FS, opts.Path)
		if err != nil {
			return Config{}, err
		}
		layers = append(layers, l)
	}

	switch opts.EnvPrefix {
	case "-":
	case "":
		layers = append(layers, loader.NewEnvLoader(loader.DefaultEnvPrefix))
	default:
		layers = append(layers, loader.NewEnvLoader(opts.EnvPrefix))
	}

	merged := make(map[string]any)
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap overlays the settings in m onto Default.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	s := settings(m)

	var err error
	if cfg.Logging.Level, err = s.stringOr("logging.level", cfg.Logging.Level); err != nil {
		return Config{}, err
	}
	if cfg.History.Capacity, err = s.intOr("history.capacity", cfg.History.Capacity); err != nil {
		return Config{}, err
	}
	if cfg.History.File, err = s.stringOr("history.file", cfg.History.File); err != nil {
		return Config{}, err
	}
	if cfg.Operations.Extra, err = s.stringSliceOr("operations.extra", cfg.Operations.Extra); err != nil {
		return Config{}, err
	}
	if cfg.Plugins.Dir, err = s.stringOr("plugins.dir", cfg.Plugins.Dir); err != nil {
		return Config{}, err
	}
	if cfg.Plugins.Scripts, err = s.stringSliceOr("plugins.scripts", cfg.Plugins.Scripts); err != nil {
		return Config{}, err
	}
	if cfg.Plugins.Timeout, err = s.durationOr("plugins.timeout", cfg.Plugins.Timeout); err != nil {
		return Config{}, err
	}
	if cfg.Plugins.Watch, err = s.boolOr("plugins.watch", cfg.Plugins.Watch); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting is within its allowed range.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return &ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v", logLevels),
			Value:   c.Logging.Level,
		}
	}
	if c.History.Capacity <= 0 {
		return &ValidationError{
			Path:    "history.capacity",
			Message: "must be positive",
			Value:   c.History.Capacity,
		}
	}
	if c.History.File == "" {
		return &ValidationError{
			Path:    "history.file",
			Message: "must not be empty",
			Value:   c.History.File,
		}
	}
	for _, symbol := range c.Operations.Extra {
		if _, ok := operation.ByName(symbol); !ok {
			return &ValidationError{
				Path:    "operations.extra",
				Message: "unknown built-in operation",
				Value:   symbol,
			}
		}
	}
	if c.Plugins.Timeout <= 0 {
		return &ValidationError{
			Path:    "plugins.timeout",
			Message: "must be positive",
			Value:   c.Plugins.Timeout,
		}
	}
	return nil
}
