// Package draft keeps the editor's in-progress problem statement and code
// safe across restarts without writing to storage on every keystroke.
//
// Updates land in memory at once and arm a trailing-edge debounce: the draft
// is persisted DefaultDelay after the most recent Update, and only if it is
// not blank. There is a single draft slot for the whole device, shared by
// every account that signs in on it.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/TusharG27x/codebuddy/internal/client/storage"
	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/logging"
	"github.com/jonboulle/clockwork"
)

// DefaultDelay is the quiet period before a draft is written.
const DefaultDelay = 1200 * time.Millisecond

// Patch carries the fields to change; nil fields are left as they are.
type Patch struct {
	ProblemText *string
	CodeText    *string
}

// Problem returns a Patch setting only the problem statement.
func Problem(s string) Patch { return Patch{ProblemText: &s} }

// Code returns a Patch setting only the code.
func Code(s string) Patch { return Patch{CodeText: &s} }

type Option func(*Autosaver)

func WithClock(c clockwork.Clock) Option {
	return func(a *Autosaver) { a.clock = c }
}

// WithDelay overrides DefaultDelay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(a *Autosaver) {
		if d > 0 {
			a.delay = d
		}
	}
}

type Autosaver struct {
	repo  storage.Repository
	log   logging.Logger
	clock clockwork.Clock
	delay time.Duration

	mu    sync.Mutex
	draft models.Draft
	timer clockwork.Timer
	// gen identifies the armed timer. Any Update, Reset or Flush bumps it,
	// so a callback from a superseded timer finds a mismatch and does nothing.
	gen uint64
	// dirty is set while the in-memory draft has edits storage does not.
	dirty bool
}

func NewAutosaver(repo storage.Repository, log logging.Logger, opts ...Option) *Autosaver {
	a := &Autosaver{
		repo:  repo,
		log:   log.With("component", "draft"),
		clock: clockwork.NewRealClock(),
		delay: DefaultDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the persisted draft into memory and returns it. Absent or
// unreadable drafts yield an empty draft.
func (a *Autosaver) Load(ctx context.Context) models.Draft {
	a.mu.Lock()
	defer a.mu.Unlock()

	loaded, err := a.read(ctx)
	if err != nil {
		a.log.Warn(ctx, "ignoring persisted draft", "error", err)
		loaded = models.Draft{}
	}
	a.draft = loaded
	a.dirty = false
	return a.draft
}

func (a *Autosaver) read(ctx context.Context) (models.Draft, error) {
	data, err := a.repo.Get(ctx, common.DraftKey)
	if err != nil || data == nil {
		return models.Draft{}, err
	}

	var d models.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return models.Draft{}, fmt.Errorf("%w: %v", common.ErrMalformedRecord, err)
	}
	return d, nil
}

// Update merges p into the in-memory draft and restarts the debounce timer.
func (a *Autosaver) Update(p Patch) models.Draft {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p.ProblemText != nil {
		a.draft.ProblemText = *p.ProblemText
	}
	if p.CodeText != nil {
		a.draft.CodeText = *p.CodeText
	}
	a.dirty = true

	a.cancelLocked()
	gen := a.gen
	a.timer = a.clock.AfterFunc(a.delay, func() { a.fire(gen) })
	return a.draft
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.gen {
		return
	}
	a.timer = nil
	_ = a.persistLocked(context.Background())
}

// Flush persists unsaved edits right away instead of waiting for the quiet
// period, including edits whose debounced write failed. It does nothing when
// storage is up to date.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.dirty {
		return nil
	}
	a.cancelLocked()
	return a.persistLocked(ctx)
}

// Reset cancels any pending write and removes the draft from memory and
// storage. No write from an earlier Update can land after Reset returns.
func (a *Autosaver) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()
	a.draft = models.Draft{}
	a.dirty = false

	if err := a.repo.Delete(ctx, common.DraftKey); err != nil {
		a.log.Warn(ctx, "failed to remove persisted draft", "error", err)
		return err
	}
	return nil
}

// Current returns the in-memory draft, including unsaved edits.
func (a *Autosaver) Current() models.Draft {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draft
}

// LastSavedAt returns when the draft was last written successfully.
func (a *Autosaver) LastSavedAt() (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ts := a.draft.LastSavedTimestamp
	return ts, !ts.IsZero()
}

// Unsaved reports whether the in-memory draft has edits not yet written.
func (a *Autosaver) Unsaved() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// Pending reports whether a debounced write is armed.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// Close stops the timer without writing.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

func (a *Autosaver) cancelLocked() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// persistLocked writes the draft stamped with the current time. Blank
// drafts are skipped. On failure the in-memory draft and its previous
// timestamp are kept.
func (a *Autosaver) persistLocked(ctx context.Context) error {
	if a.draft.IsBlank() {
		a.dirty = false
		return nil
	}

	rec := a.draft
	rec.LastSavedTimestamp = a.clock.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		a.log.Error(ctx, "failed to encode draft", "error", err)
		return err
	}
	if err := a.repo.Set(ctx, common.DraftKey, data); err != nil {
		a.log.Warn(ctx, "failed to persist draft", "error", err)
		return err
	}

	a.draft.LastSavedTimestamp = rec.LastSavedTimestamp
	a.dirty = false
	a.log.Debug(ctx, "draft saved", "at", rec.LastSavedTimestamp)
	return nil
}
