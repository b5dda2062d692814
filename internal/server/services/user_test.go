package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/dbx"
	"github.com/TusharG27x/codebuddy/internal/server/config"
	"github.com/TusharG27x/codebuddy/internal/server/models"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/repomanager"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", SessionValidity: time.Hour}
}

func newSQLiteDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, err := repomanager.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

// failingStatsManager returns a stats repository whose Create always fails.
type failingStatsManager struct {
	repomanager.RepositoryManager
}

func (m failingStatsManager) Stats(db dbx.DBTX) stats.Repository {
	return failingStats{Repository: m.RepositoryManager.Stats(db)}
}

type failingStats struct {
	stats.Repository
}

func (failingStats) Create(context.Context, string) error { return errors.New("stats down") }

// --- tests ---

func TestUserService_RegisterAndLogin(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, m, testConfig())
	ctx := context.Background()

	u, token, err := s.Register(ctx, " Alice ", "Alice@Example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)

	uid, err := s.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	got, _, err := s.Login(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	st, err := m.Stats(db).Get(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.Logins)
}

func TestUserService_LoginRejectsBadCredentials(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, m, testConfig())
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Alice", "a@example.com", []byte("pw"))
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "a@example.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, _, err = s.Login(ctx, "nobody@example.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestUserService_RegisterValidation(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, m, testConfig())
	ctx := context.Background()

	tests := []struct {
		name, user, email, pw string
	}{
		{"no name", " ", "a@example.com", "pw"},
		{"bad email", "A", "not-an-email", "pw"},
		{"no password", "A", "a@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Register(ctx, tt.user, tt.email, []byte(tt.pw))
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, m, testConfig())
	ctx := context.Background()

	_, _, err := s.Register(ctx, "A", "a@example.com", []byte("pw"))
	require.NoError(t, err)
	_, _, err = s.Register(ctx, "B", "A@example.com", []byte("pw2"))
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestUserService_RegisterRollsBackOnStatsFailure(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, failingStatsManager{RepositoryManager: m}, testConfig())
	ctx := context.Background()

	_, _, err := s.Register(ctx, "A", "a@example.com", []byte("pw"))
	require.Error(t, err)

	_, err = m.Users(db).GetByEmail(ctx, "a@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound, "user insert must be rolled back")
}

func TestUserService_RegisterTxWithSQLMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO user_stats").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := NewUserService(db, repomanager.NewSQLiteRepositoryManager(), testConfig())
	_, _, err = s.Register(context.Background(), "A", "a@example.com", []byte("pw"))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateProfile(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, m, testConfig())
	ctx := context.Background()

	u, _, err := s.Register(ctx, "A", "a@example.com", []byte("pw"))
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, u.ID, "  ", "bio")
	require.ErrorIs(t, err, ErrInvalidInput)

	got, err := s.UpdateProfile(ctx, u.ID, "Alice", " likes Go ")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "Alice", Email: "a@example.com", Bio: "likes Go"}, got.Profile())

	_, err = s.UpdateProfile(ctx, "missing", "X", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserService_ProfileUsesUsersRepo(t *testing.T) {
	db, m := newSQLiteDB(t)
	s := NewUserService(db, m, testConfig())

	_, err := s.Profile(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)

	assert.Equal(t, time.Hour, s.SessionValidity())
}
