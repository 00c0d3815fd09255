// Package config loads runtime configuration for the snack kiosk.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config. Comments and trailing
//     commas are allowed.
//  3. The .env file (env_file, default ".env") and KIOSK_* environment
//     variables; the real environment wins over the file.
//  4. Command-line flags, which override everything before them.
//
// Supported flags
//
//	-a string   backend base url
//	-t int      inactivity logout delay (seconds)
//	-r int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-j string   journal database path
//	-u string   frontend (auto, tui, cli)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "logout_delay": "10s",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  // bcrypt hash from cmd/adminhash; omit to verify on the server
//	  "admin_code_hash": "",
//	  "journal_path": "kiosk.db",
//	  "journal_max_entries": 10000,
//	  "ui": "auto",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_file": ""
//	}
package config
