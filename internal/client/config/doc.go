// Package config loads runtime configuration for the CodeBuddy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with CODEBUDDY_, optionally read from a
//     .env file in the working directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-s string   storage backend
//	-d string   SQLite database file
//	-t int      request timeout (seconds)
//	-w int      autosave delay (milliseconds)
//	-log string log format
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "1200ms" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "storage_backend": "sqlite",
//	  "storage_dsn": ".codebuddy/codebuddy.db",
//	  "autosave_delay": "1200ms",
//	  "request_timeout": "10s"
//	}
package config
