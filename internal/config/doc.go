// Package config provides the configuration system for the calculator.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CALCULATOR_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A configuration file looks like:
//
//	[logging]
//	level = "info"
//
//	[history]
//	capacity = 10
//	file = "historia.txt"
//
//	[operations]
//	extra = ["sqrt", "%", "abs"]
//
//	[plugins]
//	dir = "plugins"
//	timeout = "1s"
//	watch = true
//
// Load returns a validated Config; values of the wrong type produce a
// *TypeError and out-of-range values a *ValidationError.
package config
