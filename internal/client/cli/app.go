package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/TusharG27x/codebuddy/internal/client/client"
	"github.com/TusharG27x/codebuddy/internal/client/config"
	"github.com/TusharG27x/codebuddy/internal/client/draft"
	"github.com/TusharG27x/codebuddy/internal/client/guard"
	"github.com/TusharG27x/codebuddy/internal/client/services"
	"github.com/TusharG27x/codebuddy/internal/client/session"
	"github.com/TusharG27x/codebuddy/internal/client/storage"
	"github.com/TusharG27x/codebuddy/internal/logging"
)

type App struct {
	config       *config.Config
	log          logging.Logger
	repo         storage.Repository
	store        *session.Store
	guard        *guard.Guard
	drafts       *draft.Autosaver
	authService  services.AuthService
	studyService services.StudyService
	reader       *bufio.Reader
	out          io.Writer

	mu        sync.Mutex
	view      string
	stopWatch func()
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	repo, err := storage.Open(ctx, storage.Options{
		Backend:       c.StorageBackend,
		DSN:           c.StorageDSN,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening storage: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	store := session.NewStore(repo, log)
	as := services.NewAuthService(apiClient, store, log)
	ss := services.NewStudyService(apiClient, store, as)
	drafts := draft.NewAutosaver(repo, log, draft.WithDelay(c.AutosaveDelay))

	app := newApp(store, drafts, as, ss, bufio.NewReader(os.Stdin), os.Stdout)
	app.config = c
	app.log = log
	app.repo = repo
	return app, nil
}

func newApp(store *session.Store, drafts *draft.Autosaver, as services.AuthService, ss services.StudyService, r *bufio.Reader, w io.Writer) *App {
	return &App{
		log:          logging.Nop(),
		store:        store,
		guard:        guard.New(store, guard.ViewLogin, guard.DefaultProtected...),
		drafts:       drafts,
		authService:  as,
		studyService: ss,
		reader:       r,
		out:          w,
		view:         guard.ViewHome,
	}
}

// Run restores local state, then serves commands until the user exits or
// input ends. Pending draft edits are flushed on the way out.
func (a *App) Run(ctx context.Context) {
	defer a.shutdown(ctx)

	snap := a.store.Initialize(ctx)
	a.drafts.Load(ctx)

	a.println("Welcome to CodeBuddy (type 'help' for commands)")
	if snap.LoggedIn {
		a.println(fmt.Sprintf("Welcome back, %s!", snap.Session.Name))
		_ = a.Dashboard(ctx)
	} else {
		_ = a.Home(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
	a.mu.Unlock()

	if err := a.drafts.Flush(ctx); err != nil {
		a.log.Warn(ctx, "failed to flush draft on exit", "error", err)
	}
	a.drafts.Close()
	_ = a.authService.Close()
	if a.repo != nil {
		_ = a.repo.Close()
	}
}

// Interrupt saves unsaved draft edits when the process is being stopped
// while Run is still blocked on input. ctx should outlive the signal that
// triggered it.
func (a *App) Interrupt(ctx context.Context) {
	if err := a.drafts.Flush(ctx); err != nil {
		a.log.Warn(ctx, "failed to flush draft on interrupt", "error", err)
	}
	a.drafts.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.Current().LoggedIn
}

// getStatus renders the prompt: signed-in name (or guest) and active view.
func (a *App) getStatus() string {
	name := "guest"
	if snap := a.store.Current(); snap.LoggedIn {
		name = snap.Session.Name
		if name == "" {
			name = snap.Session.Email
		}
	}
	return fmt.Sprintf("(%s @ %s)", name, a.currentView())
}

func (a *App) currentView() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// reportError prints a user-facing message for a failed backend call.
func (a *App) reportError(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		a.println("Your session has expired. Please log in again.")
		return
	}
	a.println(client.Message(err))
}
