package cli

import (
	"context"
	"fmt"

	"github.com/TusharG27x/codebuddy/internal/client/guard"
	"github.com/TusharG27x/codebuddy/internal/client/models"
)

// Profile fetches and prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewProfile) {
		return nil
	}

	p, err := a.studyService.Profile(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.printProfile(p)
	return nil
}

// EditProfile prompts for a new name and bio. Empty input keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewProfile) {
		return nil
	}
	cur := a.store.Current().Session

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", cur.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = cur.Name
	}
	bio, err := getSimpleText(a.reader, fmt.Sprintf("Bio [%s]", cur.Bio), a.out)
	if err != nil {
		return err
	}
	if bio == "" {
		bio = cur.Bio
	}

	sess, err := a.studyService.SaveProfile(ctx, name, bio)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.println("Profile updated.")
	a.printProfile(models.Profile{Name: sess.Name, Email: sess.Email, Bio: sess.Bio})
	return nil
}

func (a *App) printProfile(p models.Profile) {
	a.println("Name: ", p.Name)
	a.println("Email:", p.Email)
	bio := p.Bio
	if bio == "" {
		bio = "-"
	}
	a.println("Bio:  ", bio)
}
