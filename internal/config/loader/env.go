package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEnvPrefix is the prefix of calculator environment variables.
const DefaultEnvPrefix = "CALCULATOR_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "CALCULATOR_")
	mapping map[string]string // Env var name without prefix -> config path
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "CALCULATOR_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

// defaultEnvMapping returns the default environment variable mappings,
// keyed by the name that follows the prefix.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"LOG_LEVEL":        "logging.level",
		"HISTORY_CAPACITY": "history.capacity",
		"HISTORY_FILE":     "history.file",
		"OPERATIONS":       "operations.extra",
		"PLUGIN_DIR":       "plugins.dir",
		"PLUGIN_TIMEOUT":   "plugins.timeout",
		"PLUGIN_WATCH":     "plugins.watch",
	}
}

// Settings whose values are taken verbatim from the environment.
var stringPaths = map[string]bool{
	"logging.level": true,
	"history.file":  true,
	"plugins.dir":   true,
}

// Settings whose values are comma-separated lists.
var listPaths = map[string]bool{
	"operations.extra": true,
	"plugins.scripts":  true,
}

// Load reads environment variables and returns a configuration map.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		path, mapped := l.mapping[strings.TrimPrefix(name, l.prefix)]
		if !mapped {
			// CALCULATOR_HISTORY_FILE_MODE -> history.fileMode
			path = l.envToPath(name)
		}
		setByPath(config, path, l.parseValue(path, value))
	}

	return config, nil
}

// envToPath converts CALCULATOR_SECTION_SOME_NAME to section.someName.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	settingName := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			settingName += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}

	return section + "." + settingName
}

// parseValue converts s into the type expected at path. String settings
// are returned unchanged, list settings are split on commas and anything
// else is parsed as the first matching bool, integer, float or duration.
func (l *EnvLoader) parseValue(path, s string) any {
	if stringPaths[path] {
		return s
	}

	if listPaths[path] {
		var items []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}

	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
