package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Upload(ctx context.Context) error
	List(ctx context.Context) error
	Proof(ctx context.Context) error
	Verify(ctx context.Context) error
	Download(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
func runREPL(ctx context.Context, scanner *bufio.Scanner, a execIface, statusFn func() string) {

	for {
		fmt.Printf("inventa %s> ", statusFn())
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		var err error

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				_, _ = printlnFn("Available commands: upload, list, proof, verify, download, logout, exit")
			} else {
				_, _ = printlnFn("Available commands: register, login, verify, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "upload":
			err = a.Upload(ctx)
		case "list":
			err = a.List(ctx)
		case "proof":
			err = a.Proof(ctx)
		case "verify":
			err = a.Verify(ctx)
		case "download":
			err = a.Download(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "exit", "quit":
			_, _ = printlnFn("Bye!")
			return
		default:
			_, _ = printlnFn("Unknown command (type 'help' for commands)")
		}

		if err != nil {
			_, _ = printlnFn(err.Error())
		}
	}
}
