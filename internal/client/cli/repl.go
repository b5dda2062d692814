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
	Home(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Editor(ctx context.Context) error
	SetProblem(ctx context.Context) error
	SetCode(ctx context.Context) error
	ShowDraft(ctx context.Context) error
	ResetDraft(ctx context.Context) error
	Hint(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: home, signup, login, exit"
	helpMember = "Available commands: home, dashboard, profile, editprofile, editor, problem, code, draft, reset, hint, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the CodeBuddy CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              - show available commands
//	  - home              - landing view
//	  - signup | register - create an account
//	  - login             - authenticate
//	  - exit | quit       - leave the program
//
//	Logged in (protected views redirect to login otherwise):
//	  - dashboard         - progress stats
//	  - profile           - show profile
//	  - editprofile       - change name and bio
//	  - editor            - open the editor and show the draft
//	  - problem           - set the problem statement
//	  - code              - set the code (multi-line)
//	  - draft             - show the draft and its save status
//	  - reset             - clear the draft
//	  - hint              - ask for an AI hint on the draft
//	  - logout            - log out
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("codebuddy %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "home":
			_ = a.Home(ctx)

		case "signup", "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "editor":
			_ = a.Editor(ctx)

		case "problem":
			_ = a.SetProblem(ctx)

		case "code":
			_ = a.SetCode(ctx)

		case "draft":
			_ = a.ShowDraft(ctx)

		case "reset":
			_ = a.ResetDraft(ctx)

		case "hint":
			_ = a.Hint(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
