package config

import "path/filepath"

// DBFileName is the container file name inside the app directory.
const DBFileName = "passwords.db"

// LogFileName is the log file name inside the app directory.
const LogFileName = "passmgr.log"

// Config holds runtime settings for the passmgr CLI.
//
// Fields:
//   - DBPath: location of the sealed container file.
//   - LogPath: location of the structured log file.
//   - LogMaxSize: rotation threshold for the log file, in bytes.
//   - KDFTime / KDFMemoryKiB / KDFParallelism: Argon2id cost factors used
//     when a container is first created. Existing containers always unlock
//     with the parameters persisted in their header.
type Config struct {
	DBPath         string
	LogPath        string
	LogMaxSize     int64
	KDFTime        uint32
	KDFMemoryKiB   uint32
	KDFParallelism uint8
}

// LoadDefaults populates c with sensible defaults rooted at appDir.
func (c *Config) LoadDefaults(appDir string) {
	c.DBPath = filepath.Join(appDir, DBFileName)
	c.LogPath = filepath.Join(appDir, LogFileName)
	c.LogMaxSize = 10 * 1024 * 1024
	c.KDFTime = 1
	c.KDFMemoryKiB = 64 * 1024
	c.KDFParallelism = 4
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig(appDir string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults(appDir)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
