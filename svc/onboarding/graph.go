package onboarding

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed graph.yaml
var defaultGraphYAML []byte

// MainStep groups consecutive sub-steps.
type MainStep struct {
	Number    int
	Title     string
	CRMStepID string
	// Markers are the answer fields that, when all present, mark this main
	// step as complete. An empty set never completes.
	Markers []string
	Steps   []Step
}

// Graph is the immutable wizard layout. Safe for concurrent use.
type Graph struct {
	mains []MainStep
	slugs map[Step]string
	bySlg map[string]Step
}

type graphDoc struct {
	MainSteps []struct {
		Number    int      `yaml:"number"`
		Title     string   `yaml:"title"`
		CRMStepID string   `yaml:"crm_step_id"`
		Markers   []string `yaml:"markers"`
		Steps     []struct {
			ID   string `yaml:"id"`
			Slug string `yaml:"slug"`
		} `yaml:"steps"`
	} `yaml:"main_steps"`
}

// DefaultGraph returns the built-in layout.
func DefaultGraph() *Graph {
	g, err := ParseGraph(defaultGraphYAML)
	if err != nil {
		panic(fmt.Sprintf("onboarding: embedded graph: %v", err))
	}
	return g
}

// LoadGraph reads a layout from a YAML file. An empty path yields the default.
func LoadGraph(path string) (*Graph, error) {
	if path == "" {
		return DefaultGraph(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}
	return ParseGraph(data)
}

// ParseGraph decodes and validates a YAML layout. The steps it lists must be
// exactly the known steps, in order, grouped under their main step number.
func ParseGraph(data []byte) (*Graph, error) {
	var doc graphDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}

	g := &Graph{
		slugs: make(map[Step]string, len(steps)),
		bySlg: make(map[string]Step, len(steps)),
	}

	var seen []Step
	for i, m := range doc.MainSteps {
		if m.Number != i+1 {
			return nil, fmt.Errorf("%w: main step %d listed at position %d", ErrInvalidGraph, m.Number, i+1)
		}
		if len(m.Steps) == 0 {
			return nil, fmt.Errorf("%w: main step %d has no steps", ErrInvalidGraph, m.Number)
		}

		ms := MainStep{
			Number:    m.Number,
			Title:     m.Title,
			CRMStepID: m.CRMStepID,
			Markers:   slices.Clone(m.Markers),
		}
		for j, s := range m.Steps {
			st, ok := ParseStep(s.ID)
			if !ok || st.Main() != m.Number || st.Sub() != j {
				return nil, fmt.Errorf("%w: unexpected step %q in main step %d", ErrInvalidGraph, s.ID, m.Number)
			}
			if s.Slug == "" {
				return nil, fmt.Errorf("%w: step %s has no slug", ErrInvalidGraph, st)
			}
			if _, dup := g.bySlg[s.Slug]; dup {
				return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidGraph, s.Slug)
			}
			g.slugs[st] = s.Slug
			g.bySlg[s.Slug] = st
			ms.Steps = append(ms.Steps, st)
			seen = append(seen, st)
		}
		g.mains = append(g.mains, ms)
	}

	if !slices.Equal(seen, steps) {
		return nil, fmt.Errorf("%w: graph must list all %d steps in order", ErrInvalidGraph, len(steps))
	}

	return g, nil
}

// First returns the first step of the wizard.
func (g *Graph) First() Step {
	return g.mains[0].Steps[0]
}

// MainSteps returns the main steps in order.
func (g *Graph) MainSteps() []MainStep {
	return slices.Clone(g.mains)
}

// MainStep returns the main step with the given 1-based number.
func (g *Graph) MainStep(n int) (MainStep, bool) {
	if n < 1 || n > len(g.mains) {
		return MainStep{}, false
	}
	return g.mains[n-1], true
}

// FirstOf returns the first sub-step of main step n.
func (g *Graph) FirstOf(n int) (Step, bool) {
	m, ok := g.MainStep(n)
	if !ok {
		return "", false
	}
	return m.Steps[0], true
}

// Next returns the step after s, or false when s is the last step.
func (g *Graph) Next(s Step) (Step, bool) {
	i := slices.Index(steps, s)
	if i < 0 || i+1 >= len(steps) {
		return "", false
	}
	return steps[i+1], true
}

// Slug returns the URL-friendly name of s, or the empty string for unknown
// steps.
func (g *Graph) Slug(s Step) string {
	return g.slugs[s]
}

// Lookup resolves either a step id ("2-0") or a slug ("employment-status").
func (g *Graph) Lookup(v string) (Step, bool) {
	if st, ok := ParseStep(v); ok {
		return st, true
	}
	st, ok := g.bySlg[v]
	return st, ok
}

// Infer walks main steps in order and returns the first sub-step of the first
// main step whose markers are not all present. If every main step with
// markers is complete, the walk stops at the first main step without markers.
func (g *Graph) Infer(p *Progress) Step {
	if p == nil || !p.HasAnswers() {
		return g.First()
	}

	target := g.First()
	for i, m := range g.mains {
		if len(m.Markers) == 0 || !p.HasAll(m.Markers) {
			break
		}
		if i+1 < len(g.mains) {
			target = g.mains[i+1].Steps[0]
		}
	}
	return target
}
