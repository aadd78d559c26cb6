// Package config loads runtime configuration for the gophterms CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or the
//     GOPHTERMS_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server
//	-i int      online status check interval (seconds)
//	-w int      request timeout (seconds)
//	-f string   local database file
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "database_file": "data/gophterms.db",
//	  "log_level": "warn"
//	}
package config
