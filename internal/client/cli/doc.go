// Package cli provides the interactive CodeBuddy command-line client.
//
// It wires configuration, local storage, the session store, the draft
// autosaver, the view guard and the API services into a REPL. Each view of
// the application (home, login, signup, dashboard, editor, profile) is a
// command; protected views pass through the guard first and are revoked
// as soon as the session ends.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
