package onboarding_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

func TestDefaultGraph(t *testing.T) {
	t.Parallel()

	g := onboarding.DefaultGraph()
	assert.Equal(t, onboarding.StepPersonalDetails, g.First())

	mains := g.MainSteps()
	require.Len(t, mains, 4)
	assert.Equal(t, []string{"first-name", "last-name", "phone"}, mains[0].Markers)
	assert.Len(t, mains[1].Steps, 6)
	assert.Empty(t, mains[3].Markers)

	first, ok := g.FirstOf(3)
	require.True(t, ok)
	assert.Equal(t, onboarding.StepProfessionalExperience, first)

	_, ok = g.FirstOf(5)
	assert.False(t, ok)

	next, ok := g.Next(onboarding.StepPublicOfficialStatus)
	require.True(t, ok)
	assert.Equal(t, onboarding.StepEmploymentStatus, next)

	_, ok = g.Next(onboarding.StepVerification)
	assert.False(t, ok)

	assert.Equal(t, "employment-status", g.Slug(onboarding.StepEmploymentStatus))

	st, ok := g.Lookup("risk-tolerance")
	require.True(t, ok)
	assert.Equal(t, onboarding.StepRiskTolerance, st)

	st, ok = g.Lookup("3-1")
	require.True(t, ok)
	assert.Equal(t, onboarding.StepRiskTolerance, st)

	_, ok = g.Lookup("nope")
	assert.False(t, ok)
}

func TestParseGraph_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "main_steps: [:"},
		{"empty", "main_steps: []"},
		{"wrong numbering", `
main_steps:
  - number: 2
    steps: [{id: "2-0", slug: a}]`},
		{"missing steps", `
main_steps:
  - number: 1
    steps:
      - {id: "1-0", slug: a}`},
		{"step in wrong main", `
main_steps:
  - number: 1
    steps:
      - {id: "2-0", slug: a}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := onboarding.ParseGraph([]byte(tt.yaml))
			require.ErrorIs(t, err, onboarding.ErrInvalidGraph)
		})
	}
}

func TestLoadGraph(t *testing.T) {
	t.Parallel()

	g, err := onboarding.LoadGraph("")
	require.NoError(t, err)
	assert.Equal(t, onboarding.StepPersonalDetails, g.First())

	src, err := os.ReadFile("graph.yaml")
	require.NoError(t, err)
	custom := strings.Replace(string(src), `crm_step_id: ""`, `crm_step_id: "owiz-1"`, 1)

	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	g, err = onboarding.LoadGraph(path)
	require.NoError(t, err)
	m, ok := g.MainStep(1)
	require.True(t, ok)
	assert.Equal(t, "owiz-1", m.CRMStepID)

	_, err = onboarding.LoadGraph(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, onboarding.ErrInvalidGraph)
}

func TestGraph_Infer(t *testing.T) {
	t.Parallel()

	g := onboarding.DefaultGraph()

	step1 := map[string]any{"first-name": "Ada", "last-name": "Lovelace", "phone": "555"}
	step2 := map[string]any{
		"employmentStatus": "employed", "industry": "tech", "annualIncome": "50k",
		"availableToInvest": "10k", "planToInvest": "5k", "investmentSource": "salary",
	}
	step3 := map[string]any{"professionalExperience": "none", "riskTolerance": "low", "tradingObjective": "growth"}

	merge := func(ms ...map[string]any) map[string]any {
		out := map[string]any{}
		for _, m := range ms {
			for k, v := range m {
				out[k] = v
			}
		}
		return out
	}

	tests := []struct {
		name   string
		fields map[string]any
		want   onboarding.Step
	}{
		{"nothing", nil, onboarding.StepPersonalDetails},
		{"metadata only", map[string]any{"currentStep": "", "lastUpdated": "x"}, onboarding.StepPersonalDetails},
		{"partial step one", map[string]any{"first-name": "Ada"}, onboarding.StepPersonalDetails},
		{"step one", step1, onboarding.StepEmploymentStatus},
		{"step one with empty marker", merge(step1, map[string]any{"phone": ""}), onboarding.StepPersonalDetails},
		{"steps one and two", merge(step1, step2), onboarding.StepProfessionalExperience},
		{"all", merge(step1, step2, step3), onboarding.StepVerification},
		{"gap stops the walk", merge(step1, step3), onboarding.StepEmploymentStatus},
		{"later answers alone", step2, onboarding.StepPersonalDetails},
		{"boolean answers count", merge(step1, map[string]any{"notUsCitizen": false}), onboarding.StepEmploymentStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := g.Infer(&onboarding.Progress{Fields: tt.fields})
			assert.Equal(t, tt.want, got)
		})
	}
}
