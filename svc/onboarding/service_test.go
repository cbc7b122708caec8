package onboarding_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

func newService(t *testing.T) (*onboarding.ProgressService, *onboarding.MemoryStore, *bytes.Buffer) {
	t.Helper()
	store := onboarding.NewMemoryStore()
	buf := &bytes.Buffer{}
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := onboarding.NewProgressService(store, onboarding.DefaultGraph(),
		onboarding.WithLogger(logger.New(logger.WithOutput(buf))),
		onboarding.WithClock(func() time.Time { return now }),
	)
	return svc, store, buf
}

func TestProgressService_Merge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newService(t)

	p, err := svc.Merge(ctx, "u1", map[string]any{
		"first-name":  "Ada",
		"lastUpdated": "1999-01-01T00:00:00Z",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Fields["first-name"])
	assert.NotContains(t, p.Fields, "lastUpdated")
	assert.Equal(t, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), p.LastUpdated)

	p, err = svc.Merge(ctx, "u1", map[string]any{"first-name": "Grace", "currentStep": "1-1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Grace", p.Fields["first-name"])
	assert.Equal(t, "1-1", p.CurrentStep)
	assert.NotContains(t, p.Fields, "currentStep")
}

func TestProgressService_Merge_Invalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Merge(ctx, "", map[string]any{"a": "b"}, 1)
	require.ErrorIs(t, err, onboarding.ErrEmptyUserID)

	for _, key := range []string{"fields.nested", "$where", "", "1abc"} {
		_, err := svc.Merge(ctx, "u1", map[string]any{key: "x"}, 1)
		require.ErrorIs(t, err, onboarding.ErrInvalidField, key)
	}
}

func TestProgressService_SetCurrentStep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, store, logs := newService(t)

	require.NoError(t, svc.SetCurrentStep(ctx, "u1", "employment-status", 2))
	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2-0", p.CurrentStep)

	// Invalid steps are ignored, not errors.
	require.NoError(t, svc.SetCurrentStep(ctx, "u1", "9-9", 4))
	p, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2-0", p.CurrentStep)
	assert.Contains(t, logs.String(), "ignoring invalid current step")
}

func TestProgressService_SetCurrentStep_BeyondWatermark(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, store, logs := newService(t)

	require.NoError(t, svc.SetCurrentStep(ctx, "u1", "1-2", 1))

	require.NoError(t, svc.SetCurrentStep(ctx, "u1", "4-0", 1))
	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "1-2", p.CurrentStep)
	assert.Contains(t, logs.String(), "ignoring current step beyond watermark")

	p, err = svc.Merge(ctx, "u1", map[string]any{"first-name": "Ada", "currentStep": "3-0"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "1-2", p.CurrentStep)
	assert.Equal(t, "Ada", p.Fields["first-name"])

	require.NoError(t, svc.SetCurrentStep(ctx, "u1", "2-3", 2))
	p, err = store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2-3", p.CurrentStep)
}

func TestProgressService_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Merge(ctx, "u1", map[string]any{"phone": "555"}, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "u1"))

	_, err = svc.Load(ctx, "u1")
	require.ErrorIs(t, err, onboarding.ErrNotFound)
}
