package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/passmgr/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-db string   path to the container file (default from Config)
//	-log string  path to the log file (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so the positional master-password argument and
// flags owned by other components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-db", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the password container file")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "path to the log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
