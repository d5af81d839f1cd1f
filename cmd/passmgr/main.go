package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/passmgr/internal/buildinfo"
	"github.com/dmitrijs2005/passmgr/internal/cli"
	"github.com/dmitrijs2005/passmgr/internal/common"
	"github.com/dmitrijs2005/passmgr/internal/config"
	"github.com/dmitrijs2005/passmgr/internal/filex"
	"github.com/dmitrijs2005/passmgr/internal/flagx"
	"github.com/dmitrijs2005/passmgr/internal/kdf"
	"github.com/dmitrijs2005/passmgr/internal/logging"
	"github.com/dmitrijs2005/passmgr/internal/secrets"
	"github.com/dmitrijs2005/passmgr/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	buildinfo.PrintBuildData(os.Stdout)

	appDir, err := filex.AppDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	cfg := config.LoadConfig(appDir)

	var log logging.Logger
	logger, closer, err := logging.NewFileLogger(cfg.LogPath, cfg.LogMaxSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to initialize logging:", err)
		log = logging.NewNop()
	} else {
		defer closer.Close()
		log = logger
	}

	ctx := context.Background()
	log.Info(ctx, "passmgr starting", "db", cfg.DBPath)

	params := kdf.Params{
		Time:        cfg.KDFTime,
		MemoryKiB:   cfg.KDFMemoryKiB,
		Parallelism: cfg.KDFParallelism,
	}
	sess := session.New(cfg.DBPath, params, log)
	defer sess.Close()

	password, err := masterPassword(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if err := sess.Unlock(ctx, password); err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyPassword):
			fmt.Fprintln(os.Stderr, "Error: master password cannot be empty")
		case errors.Is(err, common.ErrAuthenticationFailed):
			fmt.Fprintln(os.Stderr, "Error: invalid password")
		case errors.Is(err, common.ErrMalformedContainer):
			fmt.Fprintln(os.Stderr, "Error: invalid store file")
		default:
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		log.Error(ctx, "unlock failed", "err", err)
		return 1
	}

	fmt.Println("Unlocked. Type 'help' for available commands.")

	scanner := bufio.NewScanner(os.Stdin)
	clean := cli.Run(ctx, sess, scanner, log)
	log.Info(ctx, "passmgr exiting", "clean", clean)

	if !clean {
		return 1
	}
	return 0
}

// masterPassword obtains the master password, preferring the positional
// argument (automated use) over an interactive no-echo prompt. On first
// run the interactive path asks twice and requires both entries to match.
func masterPassword(dbPath string) (*secrets.Buffer, error) {
	if pos := flagx.Positionals(os.Args[1:]); len(pos) > 0 {
		return secrets.FromString(pos[0]), nil
	}

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Println("No password database found. Let's set up a new one!")
		fmt.Println("IMPORTANT: If you forget this password, your data cannot be recovered!")
		return cli.ReadNewPassword(os.Stdout)
	}

	return cli.ReadPassword(os.Stdout, "Master Password: ")
}
