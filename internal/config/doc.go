// Package config loads runtime configuration for the antara CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. A .yaml/.yml file
//     is decoded as YAML, anything else as JSON. Empty values are ignored.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database file path
//	-l string   log level
//	-b string   local backup directory
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "500ms" or
// integer nanoseconds:
//
//	{
//	  "database_path": "antara.db",
//	  "log_level": "info",
//	  "capsule_refresh_interval": "1m",
//	  "lock": {"reset_delay": "500ms", "max_attempts": 5, "base_delay": "30s", "max_delay": "15m"},
//	  "backup": {"dir": "backups", "s3": {"bucket": "journal", "endpoint": "http://127.0.0.1:9000"}}
//	}
package config
