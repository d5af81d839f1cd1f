// Package config loads runtime configuration for the passmgr CLI.
//
// Sources & precedence
//
//  1. Built-in defaults rooted at ~/.passmgr (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-db string    path to the container file
//	-log string   path to the log file
//
// # JSON schema
//
//	{
//	  "db_path": "/home/me/.passmgr/passwords.db",
//	  "log_path": "/home/me/.passmgr/passmgr.log",
//	  "log_max_size": 10485760,
//	  "kdf_time": 1,
//	  "kdf_memory_kib": 65536,
//	  "kdf_parallelism": 4
//	}
//
// KDF cost factors only affect containers created after the change; an
// existing container always unlocks with the parameters stored in its
// own header.
package config
