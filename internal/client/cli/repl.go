package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
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
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Collections(ctx context.Context) error
	Terms(ctx context.Context, id string) error
	Accept(ctx context.Context, id string) error
	Create(ctx context.Context) error
	EditTerms(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Available commands: register, login, whoami, collections, terms <id>, accept <id>, exit"
	helpLoggedIn  = "Available commands: whoami, collections, terms <id>, accept <id>, create, edit-terms <id>, refresh, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the gophterms CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that prompt for more input read
// from the same reader. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gt %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withID := func(usage string, fn func(context.Context, string) error) error {
			if len(args) == 0 {
				printlnFn("Usage:", usage)
				return nil
			}
			return fn(ctx, args[0])
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "l", "collections":
			cmdErr = a.Collections(ctx)

		case "terms":
			cmdErr = withID("terms <id>", a.Terms)

		case "accept":
			cmdErr = withID("accept <id>", a.Accept)

		case "create":
			cmdErr = a.Create(ctx)

		case "edit-terms":
			cmdErr = withID("edit-terms <id>", a.EditTerms)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}

		if err != nil {
			return
		}
	}
}
