package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/TusharG27x/codebuddy/internal/client/client"
	"github.com/TusharG27x/codebuddy/internal/client/guard"
	"github.com/TusharG27x/codebuddy/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for name, email and password, creates the account and
// signs the user in with the returned profile.
func (a *App) Register(ctx context.Context) error {
	a.navigate(ctx, guard.ViewSignup)

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		a.reportAuthError(err)
		return err
	}

	a.println(fmt.Sprintf("Account created. Welcome, %s!", sess.Name))
	a.navigate(ctx, guard.ViewDashboard)
	return nil
}

// Login prompts for credentials and, on success, opens the dashboard.
// Failures leave the current session untouched.
func (a *App) Login(ctx context.Context) error {
	a.navigate(ctx, guard.ViewLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.reportAuthError(err)
		return err
	}

	a.println(fmt.Sprintf("Welcome, %s!", sess.Name))
	a.navigate(ctx, guard.ViewDashboard)
	return nil
}

// Logout ends the session locally whether or not the server answers.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("You are not logged in.")
		return nil
	}
	// Leave the protected view first so its watch does not report the
	// logout as a revocation.
	a.setView(guard.ViewHome)
	a.authService.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) reportAuthError(err error) {
	if errors.Is(err, common.ErrStaleResponse) {
		return
	}
	a.println(client.Message(err))
}
