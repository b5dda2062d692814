// Package guard decides whether a view may be shown given the current session.
package guard

import (
	"github.com/TusharG27x/codebuddy/internal/client/session"
)

// Views known to the client.
const (
	ViewHome      = "home"
	ViewLogin     = "login"
	ViewSignup    = "signup"
	ViewDashboard = "dashboard"
	ViewEditor    = "editor"
	ViewProfile   = "profile"
)

// DefaultProtected lists the views that need a session.
var DefaultProtected = []string{ViewDashboard, ViewEditor, ViewProfile}

type Outcome int

const (
	Allow Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	if o == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the result of a check. Target is set only for Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Source is the part of session.Store the guard reads.
type Source interface {
	Current() session.Snapshot
	Subscribe(fn session.Listener) (detach func())
}

type Guard struct {
	src       Source
	loginView string
	protected map[string]struct{}
}

// New returns a guard that redirects protected views to loginView while no
// session is present.
func New(src Source, loginView string, protected ...string) *Guard {
	g := &Guard{src: src, loginView: loginView, protected: make(map[string]struct{}, len(protected))}
	for _, v := range protected {
		g.protected[v] = struct{}{}
	}
	return g
}

// IsProtected reports whether view needs a session.
func (g *Guard) IsProtected(view string) bool {
	_, ok := g.protected[view]
	return ok
}

// Evaluate is the pure decision for view under snap.
func (g *Guard) Evaluate(view string, snap session.Snapshot) Decision {
	if !g.IsProtected(view) || snap.LoggedIn {
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: Redirect, Target: g.loginView}
}

// Check evaluates view against the store's current state.
func (g *Guard) Check(view string) Decision {
	return g.Evaluate(view, g.src.Current())
}

// Watch re-evaluates view on every session transition and passes the new
// decision to onChange. Call the returned function when the view is left.
func (g *Guard) Watch(view string, onChange func(Decision)) (stop func()) {
	return g.src.Subscribe(func(snap session.Snapshot) {
		onChange(g.Evaluate(view, snap))
	})
}
