package cli

import (
	"context"
	"fmt"

	"github.com/TusharG27x/codebuddy/internal/client/guard"
)

// navigate makes view the active one if the guard allows it. On redirect
// the login view becomes active instead and navigate returns false.
//
// A protected view stays watched while active, so a logout from anywhere
// (including a 401 handled by a service) sends the user back to login.
func (a *App) navigate(ctx context.Context, view string) bool {
	d := a.guard.Check(view)
	if d.Outcome == guard.Redirect {
		a.println(fmt.Sprintf("Please log in to open %s.", view))
		a.setView(d.Target)
		return false
	}
	a.setView(view)
	return true
}

func (a *App) setView(view string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.view == view && a.stopWatch != nil {
		return
	}
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
	a.view = view
	if !a.guard.IsProtected(view) {
		return
	}
	a.stopWatch = a.guard.Watch(view, func(d guard.Decision) {
		if d.Outcome == guard.Redirect {
			a.revoke(view, d.Target)
		}
	})
}

// revoke runs inside a store notification; it must not touch the store.
func (a *App) revoke(view, target string) {
	a.mu.Lock()
	if a.view != view {
		a.mu.Unlock()
		return
	}
	a.view = target
	stop := a.stopWatch
	a.stopWatch = nil
	a.mu.Unlock()

	if stop != nil {
		stop()
	}
	a.println("You have been signed out.")
}

// Home shows the landing view.
func (a *App) Home(ctx context.Context) error {
	a.navigate(ctx, guard.ViewHome)
	a.println("CodeBuddy: practice problems with an AI study partner.")
	if a.isLoggedIn() {
		a.println("Open your dashboard or the editor to continue.")
	} else {
		a.println("Log in or sign up to get started.")
	}
	return nil
}
