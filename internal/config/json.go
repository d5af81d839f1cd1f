package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/passmgr/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero
// values mean "not set" and leave the runtime Config untouched.
type JsonConfig struct {
	DBPath         string `json:"db_path"`
	LogPath        string `json:"log_path"`
	LogMaxSize     int64  `json:"log_max_size"`
	KDFTime        uint32 `json:"kdf_time"`
	KDFMemoryKiB   uint32 `json:"kdf_memory_kib"`
	KDFParallelism uint8  `json:"kdf_parallelism"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.LogPath != "" {
		cfg.LogPath = jc.LogPath
	}
	if jc.LogMaxSize > 0 {
		cfg.LogMaxSize = jc.LogMaxSize
	}
	if jc.KDFTime > 0 {
		cfg.KDFTime = jc.KDFTime
	}
	if jc.KDFMemoryKiB > 0 {
		cfg.KDFMemoryKiB = jc.KDFMemoryKiB
	}
	if jc.KDFParallelism > 0 {
		cfg.KDFParallelism = jc.KDFParallelism
	}
}
