// Package cli implements the line-oriented command loop and terminal
// input helpers for passmgr.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passmgr/internal/logging"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// commandNames drives help output and unknown-command suggestions.
var commandNames = []string{"add", "get", "edit", "remove", "rm", "list", "peek", "help", "quit", "exit"}

// execIface defines the minimal command surface the REPL needs to
// operate. The real session.Session type satisfies this interface; tests
// can provide a lightweight stub.
type execIface interface {
	Add(name, secret string) error
	Get(name string) (string, error)
	Peek(name string) (string, error)
	Edit(name, secret string) error
	Remove(name string) error
	List(prefix string) []string
}

// Run starts the read–eval–print loop over the unlocked store.
//
// One command per input line:
//
//	add <name> <secret>     — insert a credential (fails if name exists)
//	get <name>              — print the secret, newline-terminated
//	peek <name>             — print the secret without a trailing newline
//	edit <name> <secret>    — overwrite an existing secret
//	remove <name> | rm      — delete a credential
//	list [prefix]           — list credential names
//	help                    — show available commands
//	quit | exit             — leave the program
//
// Secrets may contain spaces; add and edit treat everything after the
// name as the secret. The loop exits on scanner EOF or quit/exit.
//
// The return value reports whether every executed command succeeded;
// missing arguments, unknown names and persistence failures all turn it
// false so the process can exit non-zero.
func Run(ctx context.Context, a execIface, scanner *bufio.Scanner, log logging.Logger) bool {
	ok := true
	fail := func(err error) {
		printlnFn("Error:", err)
		ok = false
	}
	usage := func(u string) {
		printlnFn("Usage:", u)
		ok = false
	}

	for {
		printFn("passmgr> ")
		if !scanner.Scan() {
			return ok
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, get, edit, remove (rm), list, peek, quit")

		case "add":
			if len(args) < 2 {
				usage("add <name> <secret>")
				continue
			}
			name, secret := args[0], strings.Join(args[1:], " ")
			if err := a.Add(name, secret); err != nil {
				fail(err)
				continue
			}
			log.Info(ctx, "credential added", "name", name)
			printlnFn("Added", name)

		case "get":
			if len(args) != 1 {
				usage("get <name>")
				continue
			}
			secret, err := a.Get(args[0])
			if err != nil {
				fail(err)
				continue
			}
			printlnFn(secret)

		case "peek":
			if len(args) != 1 {
				usage("peek <name>")
				continue
			}
			secret, err := a.Peek(args[0])
			if err != nil {
				fail(err)
				continue
			}
			printFn(secret)

		case "edit":
			if len(args) < 2 {
				usage("edit <name> <new_secret>")
				continue
			}
			name, secret := args[0], strings.Join(args[1:], " ")
			if err := a.Edit(name, secret); err != nil {
				fail(err)
				continue
			}
			log.Info(ctx, "credential updated", "name", name)
			printlnFn("Updated", name)

		case "remove", "rm":
			if len(args) != 1 {
				usage("remove <name>")
				continue
			}
			if err := a.Remove(args[0]); err != nil {
				fail(err)
				continue
			}
			log.Info(ctx, "credential removed", "name", args[0])
			printlnFn("Removed", args[0])

		case "list":
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			names := a.List(prefix)
			if len(names) == 0 {
				printlnFn("No credentials stored.")
				continue
			}
			for _, name := range names {
				printlnFn(name)
			}

		case "quit", "exit":
			printlnFn("Bye!")
			return ok

		default:
			if hint := suggest(cmd); hint != "" {
				printlnFn("Unknown command:", cmd, "(did you mean", hint+"?)")
			} else {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}

// suggest returns the first known command the typed word is a prefix of.
func suggest(cmd string) string {
	for _, name := range commandNames {
		if strings.HasPrefix(name, cmd) {
			return name
		}
	}
	return ""
}
