package onboarding

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vaultmarkets/onboarding/pkg/logger"
)

// Source names the rule that produced a Resolution.
type Source string

const (
	SourcePointer  Source = "current_step"
	SourceInferred Source = "inferred"
	SourceDefault  Source = "default"
)

// Resolution is where the wizard should open for a fresh session.
type Resolution struct {
	Step            Step
	Source          Source
	HighestMainStep int
}

// Resolver decides where the wizard resumes for a user.
type Resolver struct {
	store Store
	graph *Graph
	log   *slog.Logger
}

// NewResolver returns a Resolver over store. A nil log discards output.
func NewResolver(store Store, graph *Graph, log *slog.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{store: store, graph: graph, log: log}
}

// Resolve picks the resume step for userID and raises the session watermark
// to cover it. A store failure is logged and treated as no progress, so the
// user still lands on a usable screen.
func (r *Resolver) Resolve(ctx context.Context, userID string, previousHighest int) Resolution {
	res := r.pick(ctx, userID)
	res.HighestMainStep = RaiseWatermark(previousHighest, res.Step)
	return res
}

func (r *Resolver) pick(ctx context.Context, userID string) Resolution {
	p, err := r.store.Load(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		return Resolution{Step: r.graph.First(), Source: SourceDefault}
	case err != nil:
		r.log.ErrorContext(ctx, "failed to load onboarding progress",
			logger.Component("onboarding"),
			logger.UserID(userID),
			logger.Error(err),
		)
		return Resolution{Step: r.graph.First(), Source: SourceDefault}
	}

	if st, ok := p.Step(); ok {
		return Resolution{Step: st, Source: SourcePointer}
	}
	if p.CurrentStep != "" {
		r.log.WarnContext(ctx, "stored current step is not a known step",
			logger.Component("onboarding"),
			logger.UserID(userID),
			logger.Step(p.CurrentStep),
		)
	}

	if p.HasAnswers() {
		return Resolution{Step: r.graph.Infer(p), Source: SourceInferred}
	}
	return Resolution{Step: r.graph.First(), Source: SourceDefault}
}

// RaiseWatermark returns the larger of highest and the main step of s.
// The result is never below 1.
func RaiseWatermark(highest int, s Step) int {
	return max(highest, s.Main(), 1)
}
