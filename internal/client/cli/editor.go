package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TusharG27x/codebuddy/internal/client/draft"
	"github.com/TusharG27x/codebuddy/internal/client/guard"
	"github.com/TusharG27x/codebuddy/internal/client/services"
	"github.com/TusharG27x/codebuddy/internal/common"
)

// Editor opens the editor view and shows the current draft.
func (a *App) Editor(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewEditor) {
		return nil
	}
	return a.ShowDraft(ctx)
}

// SetProblem replaces the problem statement of the draft.
func (a *App) SetProblem(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewEditor) {
		return nil
	}
	text, err := getSimpleText(a.reader, "Problem statement", a.out)
	if err != nil {
		return err
	}
	a.drafts.Update(draft.Problem(text))
	a.println("Problem updated.")
	return nil
}

// SetCode replaces the code of the draft with multi-line input.
func (a *App) SetCode(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewEditor) {
		return nil
	}
	text, err := getMultiline(a.reader, "Enter your code", a.out)
	if err != nil {
		return err
	}
	a.drafts.Update(draft.Code(text))
	a.println("Code updated.")
	return nil
}

// ShowDraft prints the draft and when it was last auto-saved.
func (a *App) ShowDraft(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewEditor) {
		return nil
	}
	d := a.drafts.Current()

	problem := d.ProblemText
	if problem == "" {
		problem = "(no problem set)"
	}
	code := d.CodeText
	if code == "" {
		code = common.CodePlaceholder
	}

	a.println("Problem:")
	a.println(problem)
	a.println("Code:")
	a.println(code)
	a.println(saveStatus(a.drafts.LastSavedAt()))
	return nil
}

// ResetDraft clears the draft in memory and in storage.
func (a *App) ResetDraft(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewEditor) {
		return nil
	}
	if err := a.drafts.Reset(ctx); err != nil {
		a.println("Draft cleared, but the saved copy could not be removed.")
		return err
	}
	a.println("Draft cleared.")
	return nil
}

// Hint asks the backend for a hint on the current draft.
func (a *App) Hint(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewEditor) {
		return nil
	}

	hint, err := a.studyService.Hint(ctx, a.drafts.Current())
	if errors.Is(err, services.ErrEmptyCode) {
		a.println("Please write some code before asking for a hint.")
		return nil
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	a.println("Hint:")
	a.println(hint)
	return nil
}

func saveStatus(at time.Time, ok bool) string {
	if !ok {
		return "No save yet"
	}
	return fmt.Sprintf("Auto-saved at %s", at.Local().Format(time.TimeOnly))
}
