package onboarding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

func TestParseStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		ok    bool
		main  int
		sub   int
	}{
		{"1-0", true, 1, 0},
		{"2-5", true, 2, 5},
		{"4-0", true, 4, 0},
		{"2-6", false, 0, 0},
		{"5-0", false, 0, 0},
		{"", false, 0, 0},
		{"employment-status", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			st, ok := onboarding.ParseStep(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.main, st.Main())
			assert.Equal(t, tt.sub, st.Sub())
		})
	}
}

func TestSteps_Order(t *testing.T) {
	t.Parallel()

	all := onboarding.Steps()
	assert.Len(t, all, 13)
	assert.Equal(t, onboarding.StepPersonalDetails, all[0])
	assert.Equal(t, onboarding.StepVerification, all[len(all)-1])

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		assert.True(t, cur.Main() > prev.Main() || (cur.Main() == prev.Main() && cur.Sub() == prev.Sub()+1))
	}
}
