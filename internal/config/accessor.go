package config

import (
	"fmt"
	"strings"
	"time"
)

// settings provides typed lookups into a merged configuration map.
type settings map[string]any

// get returns the value at a dot-separated path.
func (s settings) get(path string) (any, error) {
	parts := strings.Split(path, ".")
	var current map[string]any = s

	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, errSettingNotFound
		}
		if i == len(parts)-1 {
			return val, nil
		}
		current, ok = val.(map[string]any)
		if !ok {
			return nil, errSettingNotFound
		}
	}
	return nil, errSettingNotFound
}

func typeError(path, expected string, v any) error {
	return &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", v)}
}

func (s settings) stringOr(path, defaultValue string) (string, error) {
	v, err := s.get(path)
	if err != nil {
		return defaultValue, nil
	}
	str, ok := v.(string)
	if !ok {
		return defaultValue, typeError(path, "string", v)
	}
	return str, nil
}

func (s settings) boolOr(path string, defaultValue bool) (bool, error) {
	v, err := s.get(path)
	if err != nil {
		return defaultValue, nil
	}
	b, ok := v.(bool)
	if !ok {
		return defaultValue, typeError(path, "boolean", v)
	}
	return b, nil
}

func (s settings) intOr(path string, defaultValue int) (int, error) {
	v, err := s.get(path)
	if err != nil {
		return defaultValue, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return defaultValue, typeError(path, "integer", v)
}

// durationOr accepts duration strings ("250ms") or whole seconds.
func (s settings) durationOr(path string, defaultValue time.Duration) (time.Duration, error) {
	v, err := s.get(path)
	if err != nil {
		return defaultValue, nil
	}
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case int64:
		return time.Duration(d) * time.Second, nil
	case int:
		return time.Duration(d) * time.Second, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return defaultValue, typeError(path, "duration", v)
		}
		return parsed, nil
	}
	return defaultValue, typeError(path, "duration", v)
}

func (s settings) stringSliceOr(path string, defaultValue []string) ([]string, error) {
	v, err := s.get(path)
	if err != nil {
		result := make([]string, len(defaultValue))
		copy(result, defaultValue)
		return result, nil
	}

	switch items := v.(type) {
	case []string:
		result := make([]string, len(items))
		copy(result, items)
		return result, nil
	case []any:
		result := make([]string, 0, len(items))
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return defaultValue, typeError(path, "list of strings", v)
			}
			result = append(result, str)
		}
		return result, nil
	}
	return defaultValue, typeError(path, "list of strings", v)
}
