// Package session holds the client's single source of truth for who is
// signed in.
//
// A Store is created once per process and passed explicitly to every view
// that needs it. It keeps the current Session in memory, mirrors it to the
// storage key "session" so a restart does not force a new login, and
// notifies subscribers synchronously after each transition.
//
// The Store never talks to the network. Callers perform the credential
// exchange themselves and must make sure a slow, superseded response cannot
// reach Login; Sequencer exists for that.
package session
