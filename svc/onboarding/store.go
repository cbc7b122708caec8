package onboarding

import (
	"context"
	"time"
)

// Store persists Progress by upstream user id.
//
// Load returns ErrNotFound when nothing is stored. Merge upserts: it creates
// the record if needed, overwrites the given keys, keeps the rest, and
// stamps LastUpdated. Clear is idempotent.
type Store interface {
	Load(ctx context.Context, userID string) (*Progress, error)
	Merge(ctx context.Context, userID string, fields map[string]any, at time.Time) (*Progress, error)
	SetCurrentStep(ctx context.Context, userID string, step Step, at time.Time) error
	Clear(ctx context.Context, userID string) error
}
