package onboarding

import (
	"maps"
	"time"
)

// Metadata keys that may appear in client payloads but are not answers.
const (
	FieldCurrentStep = "currentStep"
	FieldLastUpdated = "lastUpdated"
)

// Progress is a user's saved wizard state.
type Progress struct {
	UserID string `json:"user_id"`
	// CurrentStep is the raw pointer as stored. It may be empty or, for
	// records written by older layouts, not a valid Step.
	CurrentStep string         `json:"current_step,omitempty"`
	Fields      map[string]any `json:"fields"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Step returns the current-step pointer if it names a valid step.
func (p *Progress) Step() (Step, bool) {
	if p == nil {
		return "", false
	}
	return ParseStep(p.CurrentStep)
}

// Has reports whether field holds an answer. Nil and empty strings do not
// count; false does.
func (p *Progress) Has(field string) bool {
	if p == nil {
		return false
	}
	return present(p.Fields[field])
}

// HasAll reports whether every field holds an answer.
func (p *Progress) HasAll(fields []string) bool {
	for _, f := range fields {
		if !p.Has(f) {
			return false
		}
	}
	return true
}

// HasAnswers reports whether any non-metadata field holds an answer.
func (p *Progress) HasAnswers() bool {
	if p == nil {
		return false
	}
	for k, v := range p.Fields {
		if isMetadata(k) {
			continue
		}
		if present(v) {
			return true
		}
	}
	return false
}

// Clone returns a deep enough copy for callers to mutate freely.
func (p *Progress) Clone() *Progress {
	if p == nil {
		return nil
	}
	c := *p
	c.Fields = maps.Clone(p.Fields)
	if c.Fields == nil {
		c.Fields = map[string]any{}
	}
	return &c
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	default:
		return true
	}
}

func isMetadata(key string) bool {
	return key == FieldCurrentStep || key == FieldLastUpdated
}

// answers drops metadata keys from a client payload.
func answers(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "" || isMetadata(k) {
			continue
		}
		out[k] = v
	}
	return out
}
