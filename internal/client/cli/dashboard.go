package cli

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/TusharG27x/codebuddy/internal/client/guard"
)

// Dashboard fetches the user's progress and prints it as indented JSON.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.navigate(ctx, guard.ViewDashboard) {
		return nil
	}

	raw, err := a.studyService.Stats(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		a.println(string(raw))
		return nil
	}
	a.println("Your progress:")
	a.println(buf.String())
	return nil
}
