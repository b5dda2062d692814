package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/TusharG27x/codebuddy/internal/client/storage"
	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/logging"
)

// Snapshot is an immutable view of the store. LoggedIn is false for the
// explicit "no session" value, in which case Session is zero.
type Snapshot struct {
	Session  models.Session
	LoggedIn bool
}

// Listener is called after every transition with the resulting state.
// It must not call Login, Logout, Initialize or ReplaceProfile synchronously.
type Listener func(Snapshot)

type Store struct {
	repo storage.Repository
	log  logging.Logger

	// transitions serializes mutation plus notification so listeners see
	// transitions one at a time and in the order they were applied.
	transitions sync.Mutex

	mu      sync.RWMutex
	current *models.Session

	lmu       sync.Mutex
	listeners map[uint64]Listener
	nextID    uint64
}

func NewStore(repo storage.Repository, log logging.Logger) *Store {
	return &Store{
		repo:      repo,
		log:       log.With("component", "session"),
		listeners: make(map[uint64]Listener),
	}
}

// Initialize rehydrates the session persisted by a previous run. A missing,
// unreadable or malformed record leaves the store logged out. Only malformed
// records are deleted; a read failure keeps the record for the next run.
// Subscribers are notified with the outcome.
func (s *Store) Initialize(ctx context.Context) Snapshot {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	restored, err := s.load(ctx)
	switch {
	case errors.Is(err, common.ErrMalformedRecord):
		s.log.Warn(ctx, "discarding persisted session", "error", err)
		if delErr := s.repo.Delete(ctx, common.SessionKey); delErr != nil {
			s.log.Warn(ctx, "failed to delete persisted session", "error", delErr)
		}
	case err != nil:
		s.log.Warn(ctx, "cannot read persisted session", "error", err)
	}

	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()

	snap := s.Current()
	if snap.LoggedIn {
		s.log.Info(ctx, "session restored", "user_id", snap.Session.UserID)
	}
	s.notify(snap)
	return snap
}

func (s *Store) load(ctx context.Context) (*models.Session, error) {
	data, err := s.repo.Get(ctx, common.SessionKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var restored models.Session
	if err := json.Unmarshal(data, &restored); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedRecord, err)
	}
	if err := restored.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedRecord, err)
	}
	return &restored, nil
}

// Login makes sess the current session, replacing any previous one, then
// persists it and notifies subscribers. The caller must already have
// confirmed the credentials with the server.
//
// A persistence failure is logged and does not undo the login: the session
// stays valid for this run but will not survive a restart.
func (s *Store) Login(ctx context.Context, sess models.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	s.transitions.Lock()
	defer s.transitions.Unlock()

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.persist(ctx, sess)
	s.log.Info(ctx, "logged in", "user_id", sess.UserID)
	s.notify(Snapshot{Session: sess, LoggedIn: true})
	return nil
}

// ReplaceProfile swaps the profile fields of the current session in one
// step; the user id is kept. It returns common.ErrNoSession when logged out.
func (s *Store) ReplaceProfile(ctx context.Context, p models.Profile) (models.Session, error) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return models.Session{}, common.ErrNoSession
	}
	next := s.current.WithProfile(p)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return models.Session{}, err
	}
	s.current = &next
	s.mu.Unlock()

	s.persist(ctx, next)
	s.notify(Snapshot{Session: next, LoggedIn: true})
	return next, nil
}

// Logout clears the current session and its persisted copy. It always
// succeeds locally; a storage failure is only logged.
func (s *Store) Logout(ctx context.Context) {
	s.transitions.Lock()
	defer s.transitions.Unlock()

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.SessionKey); err != nil {
		s.log.Warn(ctx, "failed to remove persisted session", "error", err)
	}
	if prev != nil {
		s.log.Info(ctx, "logged out", "user_id", prev.UserID)
	}
	s.notify(Snapshot{})
}

// Current returns the present state. It never blocks on I/O.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Snapshot{}
	}
	return Snapshot{Session: *s.current, LoggedIn: true}
}

// Subscribe registers fn for every future transition. The returned function
// detaches it and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) (detach func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

func (s *Store) persist(ctx context.Context, sess models.Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		s.log.Error(ctx, "failed to encode session", "error", err)
		return
	}
	if err := s.repo.Set(ctx, common.SessionKey, data); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

func (s *Store) notify(snap Snapshot) {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
