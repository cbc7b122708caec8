package onboarding_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

func TestCanNavigate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		highest int
		target  onboarding.Step
		want    bool
	}{
		{1, onboarding.StepPersonalDetails, true},
		{1, onboarding.StepPublicOfficialStatus, true},
		{1, onboarding.StepEmploymentStatus, false},
		{2, onboarding.StepInvestmentSource, true},
		{2, onboarding.StepPersonalDetails, true},
		{3, onboarding.StepVerification, false},
		{4, onboarding.StepVerification, true},
		{4, onboarding.Step("9-9"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, onboarding.CanNavigate(tt.highest, tt.target), "%d -> %s", tt.highest, tt.target)
	}
}

func TestNavigator_Navigate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := onboarding.NewMemoryStore()
	nav := onboarding.NewNavigator(store, onboarding.DefaultGraph())

	m, err := nav.Navigate(ctx, "u1", 2, onboarding.StepProfessionalExperience)
	require.NoError(t, err)
	assert.False(t, m.Moved)
	assert.Equal(t, 2, m.HighestMainStep)
	_, err = store.Load(ctx, "u1")
	require.ErrorIs(t, err, onboarding.ErrNotFound)

	m, err = nav.Navigate(ctx, "u1", 2, onboarding.StepResidenceAddress)
	require.NoError(t, err)
	assert.True(t, m.Moved)
	assert.Equal(t, onboarding.StepResidenceAddress, m.Step)
	assert.Equal(t, 2, m.HighestMainStep)

	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "1-1", p.CurrentStep)

	m, err = nav.NavigateMain(ctx, "u1", 2, 2)
	require.NoError(t, err)
	assert.True(t, m.Moved)
	assert.Equal(t, onboarding.StepEmploymentStatus, m.Step)

	m, err = nav.NavigateMain(ctx, "u1", 2, 9)
	require.NoError(t, err)
	assert.False(t, m.Moved)
}

func TestNavigator_Advance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := onboarding.NewMemoryStore()
	nav := onboarding.NewNavigator(store, onboarding.DefaultGraph())

	m, err := nav.Advance(ctx, "u1", 1, onboarding.StepPersonalDetails)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StepResidenceAddress, m.Step)
	assert.Equal(t, 1, m.HighestMainStep)
	assert.Zero(t, m.CompletedMain)

	_, err = store.Merge(ctx, "u1", map[string]any{
		"first-name": "Ada",
		"last-name":  "Lovelace",
		"phone":      "+44 20 7946 0000",
	}, time.Now())
	require.NoError(t, err)

	m, err = nav.Advance(ctx, "u1", 1, onboarding.StepPublicOfficialStatus)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StepEmploymentStatus, m.Step)
	assert.Equal(t, 2, m.HighestMainStep)
	assert.Equal(t, 1, m.CompletedMain)

	p, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2-0", p.CurrentStep)

	_, err = nav.Advance(ctx, "u1", 2, onboarding.StepRiskTolerance)
	require.ErrorIs(t, err, onboarding.ErrNavigationGuard)

	m, err = nav.Advance(ctx, "u1", 4, onboarding.StepVerification)
	require.NoError(t, err)
	assert.False(t, m.Moved)
	assert.Equal(t, onboarding.StepVerification, m.Step)
}

func TestNavigator_Advance_RequiresAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields map[string]any
		want   error
	}{
		{name: "no progress", fields: nil, want: onboarding.ErrStepIncomplete},
		{name: "missing phone", fields: map[string]any{"first-name": "Ada", "last-name": "Lovelace"}, want: onboarding.ErrStepIncomplete},
		{name: "blank phone", fields: map[string]any{"first-name": "Ada", "last-name": "Lovelace", "phone": ""}, want: onboarding.ErrStepIncomplete},
		{name: "complete", fields: map[string]any{"first-name": "Ada", "last-name": "Lovelace", "phone": "555"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			store := onboarding.NewMemoryStore()
			nav := onboarding.NewNavigator(store, onboarding.DefaultGraph())

			if tt.fields != nil {
				_, err := store.Merge(ctx, "u1", tt.fields, time.Now())
				require.NoError(t, err)
			}

			m, err := nav.Advance(ctx, "u1", 1, onboarding.StepPublicOfficialStatus)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				assert.False(t, m.Moved)
				assert.Equal(t, 1, m.HighestMainStep)
				assert.Zero(t, m.CompletedMain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, onboarding.StepEmploymentStatus, m.Step)
			assert.Equal(t, 2, m.HighestMainStep)
			assert.Equal(t, 1, m.CompletedMain)
		})
	}
}

func TestNavigator_Advance_WithinMainStepNeedsNoAnswers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	nav := onboarding.NewNavigator(onboarding.NewMemoryStore(), onboarding.DefaultGraph())

	m, err := nav.Advance(ctx, "u1", 2, onboarding.StepEmploymentStatus)
	require.NoError(t, err)
	assert.True(t, m.Moved)
	assert.Equal(t, onboarding.StepIndustry, m.Step)
}
