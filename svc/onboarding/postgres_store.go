package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the store uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgLoadProgress = `SELECT COALESCE(current_step, ''), fields, last_updated
FROM onboarding_progress WHERE user_id = $1`

	pgMergeProgress = `INSERT INTO onboarding_progress (user_id, fields, last_updated)
VALUES ($1, $2::jsonb, $3)
ON CONFLICT (user_id) DO UPDATE
SET fields = onboarding_progress.fields || EXCLUDED.fields,
    last_updated = EXCLUDED.last_updated
RETURNING COALESCE(current_step, ''), fields, last_updated`

	pgSetCurrentStep = `INSERT INTO onboarding_progress (user_id, current_step, last_updated)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET current_step = EXCLUDED.current_step,
    last_updated = EXCLUDED.last_updated`

	pgClearProgress = `DELETE FROM onboarding_progress WHERE user_id = $1`
)

// PostgresStore keeps progress in the onboarding_progress table. The JSONB
// concatenation operator gives per-key last-write-wins merges in one
// statement.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore returns a store over db. Run Migrations first.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, userID string) (*Progress, error) {
	return s.scan(userID, s.db.QueryRow(ctx, pgLoadProgress, userID))
}

func (s *PostgresStore) Merge(ctx context.Context, userID string, fields map[string]any, at time.Time) (*Progress, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return s.scan(userID, s.db.QueryRow(ctx, pgMergeProgress, userID, b, at))
}

func (s *PostgresStore) SetCurrentStep(ctx context.Context, userID string, step Step, at time.Time) error {
	if _, err := s.db.Exec(ctx, pgSetCurrentStep, userID, string(step), at); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, pgClearProgress, userID); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) scan(userID string, row pgx.Row) (*Progress, error) {
	var (
		p   = Progress{UserID: userID}
		raw []byte
	)
	if err := row.Scan(&p.CurrentStep, &raw, &p.LastUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	if err := json.Unmarshal(raw, &p.Fields); err != nil {
		return nil, fmt.Errorf("%w: fields: %w", ErrStoreFailure, err)
	}
	if p.Fields == nil {
		p.Fields = map[string]any{}
	}
	return &p, nil
}
