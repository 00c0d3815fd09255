package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// CLI satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	touch()
	isLoggedIn() bool
	isAdmin() bool

	Users(ctx context.Context, args []string) error
	Items(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Pin(ctx context.Context, args []string) error
	Keypad(ctx context.Context, args []string) error
	Scan(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error
	SetPin(ctx context.Context, args []string) error
	Balance(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
	Stock(ctx context.Context, args []string) error
	Journal(ctx context.Context, args []string) error
	ExitAdmin(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: users, items, select <id>, pin, keypad <digits|clear|enter|close>, admin, exit"
	helpLoggedIn  = "Available commands: scan <barcode>, undo, balance, items, setpin, logout, exit"
	helpAdmin     = "Available commands: stock <barcode> [qty], items, journal [n], exit-admin, exit"
)

// runREPL starts a simple read-eval-print loop for the kiosk.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Every line, even an empty one, counts as
// activity. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Login screen:
//	  - users                 list users
//	  - items                 show quick items and stock
//	  - select <id>           log in as a user (asks for the PIN if set)
//	  - pin                   type into the open keypad
//	  - keypad <keys...>      press keypad keys: digits, clear, enter, close
//	  - admin                 unlock stocktake with the admin code
//
//	Logged in:
//	  - scan <barcode>        buy an item
//	  - undo                  undo the last purchase
//	  - balance               show balance and PIN state
//	  - setpin                set or remove the PIN
//	  - logout                end the session
//
//	Stocktake:
//	  - stock <barcode> [qty] add stock (qty defaults to 1)
//	  - journal [n]           show recent kiosk activity
//	  - exit-admin            back to the login screen
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "kiosk %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		a.touch()

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				fmt.Fprintln(w, helpAdmin)
			case a.isLoggedIn():
				fmt.Fprintln(w, helpLoggedIn)
			default:
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "users":
			_ = a.Users(ctx, args)

		case "items":
			_ = a.Items(ctx, args)

		case "select":
			_ = a.Select(ctx, args)

		case "pin":
			_ = a.Pin(ctx, args)

		case "keypad":
			_ = a.Keypad(ctx, args)

		case "scan":
			_ = a.Scan(ctx, args)

		case "undo":
			_ = a.Undo(ctx, args)

		case "setpin":
			_ = a.SetPin(ctx, args)

		case "balance":
			_ = a.Balance(ctx, args)

		case "admin":
			_ = a.Admin(ctx, args)

		case "stock":
			_ = a.Stock(ctx, args)

		case "journal":
			_ = a.Journal(ctx, args)

		case "exit-admin":
			_ = a.ExitAdmin(ctx, args)

		case "logout":
			_ = a.Logout(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
