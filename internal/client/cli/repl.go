package cli

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	Search(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Apply(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Saved(ctx context.Context) error
	Stats(ctx context.Context) error
	History(ctx context.Context) error
	Notifications(ctx context.Context, args []string) error
	Assistant(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, reset, exit"
	userHelp  = "Available commands: profile [show|edit|set <field> <value>], search, (l)ist [category=.. sort=.. community=on|off q=.. reset], " +
		"show <n>, apply <n>, save <n>, saved, stats, history, notifications [read], assistant, logout, reset, exit"
)

// runREPL starts a simple read-eval-print loop for the ScholarMatch CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           - show available commands
//	  - register       - create a local account
//	  - login          - authenticate
//	  - reset          - delete all local data
//	  - exit | quit    - leave the program
//
//	Logged in, additionally:
//	  - profile        - show, edit or set profile fields
//	  - search         - find matching scholarships
//	  - list | l       - filter, sort and list results
//	  - show <n>       - toggle the details of a result
//	  - apply <n>      - mark a result applied
//	  - save <n>       - toggle the saved flag
//	  - saved          - list saved results
//	  - stats          - dashboard aggregates
//	  - history        - past searches
//	  - notifications  - notification feed; "notifications read" marks it read
//	  - assistant      - profile values for application forms
//	  - logout         - log out
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sm %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if !a.isLoggedIn() {
				if isUserCommand(cmd) {
					err = common.ErrNotLoggedIn
				} else {
					printlnFn("Unknown command:", cmd)
				}
				break
			}
			err = dispatch(ctx, a, cmd, args)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

var userCommands = []string{
	"logout", "profile", "search", "l", "list", "show", "apply", "save", "saved",
	"stats", "history", "notifications", "assistant",
}

func isUserCommand(cmd string) bool {
	return slices.Contains(userCommands, cmd)
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "profile":
		return a.Profile(ctx, args)
	case "search":
		return a.Search(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "apply":
		return a.Apply(ctx, args)
	case "save":
		return a.Save(ctx, args)
	case "saved":
		return a.Saved(ctx)
	case "stats":
		return a.Stats(ctx)
	case "history":
		return a.History(ctx)
	case "notifications":
		return a.Notifications(ctx, args)
	case "assistant":
		return a.Assistant(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
