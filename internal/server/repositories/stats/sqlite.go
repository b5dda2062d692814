package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/dbx"
	"github.com/TusharG27x/codebuddy/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO user_stats (user_id) VALUES (?)`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID string) (*models.Stats, error) {
	query :=
		`SELECT s.user_id, s.logins, s.hints_requested, u.created_at, s.last_active_at
		 FROM user_stats s JOIN users u ON u.id = s.user_id
		 WHERE s.user_id = ?`

	st := &models.Stats{}
	var lastActive sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&st.UserID, &st.Logins, &st.HintsRequested, &st.MemberSince, &lastActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastActive.Valid {
		st.LastActiveAt = lastActive.Time
	}
	return st, nil
}

// Increment bumps counter by one and records the activity time.
func (r *SQLiteRepository) Increment(ctx context.Context, userID string, counter models.StatsCounter) error {
	var query string
	switch counter {
	case models.CounterLogins:
		query = `UPDATE user_stats SET logins = logins + 1, last_active_at = ? WHERE user_id = ?`
	case models.CounterHints:
		query = `UPDATE user_stats SET hints_requested = hints_requested + 1, last_active_at = ? WHERE user_id = ?`
	default:
		return fmt.Errorf("unknown counter %q", counter)
	}

	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
