package onboarding

import (
	"fmt"
	"strconv"
	"strings"
)

// Step identifies one wizard screen as "<main>-<sub>".
type Step string

const (
	StepPersonalDetails        Step = "1-0"
	StepResidenceAddress       Step = "1-1"
	StepPublicOfficialStatus   Step = "1-2"
	StepEmploymentStatus       Step = "2-0"
	StepIndustry               Step = "2-1"
	StepAnnualIncome           Step = "2-2"
	StepAvailableToInvest      Step = "2-3"
	StepPlanToInvest           Step = "2-4"
	StepInvestmentSource       Step = "2-5"
	StepProfessionalExperience Step = "3-0"
	StepRiskTolerance          Step = "3-1"
	StepTradingObjective       Step = "3-2"
	StepVerification           Step = "4-0"
)

// steps lists every step in wizard order.
var steps = []Step{
	StepPersonalDetails,
	StepResidenceAddress,
	StepPublicOfficialStatus,
	StepEmploymentStatus,
	StepIndustry,
	StepAnnualIncome,
	StepAvailableToInvest,
	StepPlanToInvest,
	StepInvestmentSource,
	StepProfessionalExperience,
	StepRiskTolerance,
	StepTradingObjective,
	StepVerification,
}

// Steps returns all steps in wizard order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// ParseStep validates s against the closed set of steps.
func ParseStep(s string) (Step, bool) {
	for _, st := range steps {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the known steps.
func (s Step) Valid() bool {
	_, ok := ParseStep(string(s))
	return ok
}

// Main returns the 1-based main step number. Zero for invalid steps.
func (s Step) Main() int {
	m, _ := s.split()
	return m
}

// Sub returns the 0-based sub-step index within the main step.
func (s Step) Sub() int {
	_, sub := s.split()
	return sub
}

func (s Step) String() string { return string(s) }

func (s Step) split() (int, int) {
	if !s.Valid() {
		return 0, 0
	}
	m, sub, _ := strings.Cut(string(s), "-")
	mi, _ := strconv.Atoi(m)
	si, _ := strconv.Atoi(sub)
	return mi, si
}

func stepOf(main, sub int) Step {
	return Step(fmt.Sprintf("%d-%d", main, sub))
}
