package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Move is the outcome of a navigation request.
type Move struct {
	Step            Step
	Moved           bool
	HighestMainStep int
	// CompletedMain is the main step number left behind when Advance crosses
	// into the next main step, zero otherwise.
	CompletedMain int
}

// Navigator applies wizard moves against a session watermark and records the
// new position as the user's current-step pointer.
type Navigator struct {
	store Store
	graph *Graph
	now   func() time.Time
}

// NewNavigator returns a Navigator that records moves in store.
func NewNavigator(store Store, graph *Graph) *Navigator {
	return &Navigator{store: store, graph: graph, now: time.Now}
}

// CanNavigate reports whether target's main step has been reached.
func CanNavigate(highest int, target Step) bool {
	return target.Valid() && target.Main() <= highest
}

// Navigate jumps to target if allowed. A disallowed target is a no-op and
// returns Moved=false with the watermark unchanged.
func (n *Navigator) Navigate(ctx context.Context, userID string, highest int, target Step) (Move, error) {
	if !CanNavigate(highest, target) {
		return Move{HighestMainStep: highest}, nil
	}
	if err := n.store.SetCurrentStep(ctx, userID, target, n.now().UTC()); err != nil {
		return Move{HighestMainStep: highest}, err
	}
	return Move{Step: target, Moved: true, HighestMainStep: highest}, nil
}

// NavigateMain jumps to the first sub-step of main step number main.
func (n *Navigator) NavigateMain(ctx context.Context, userID string, highest, main int) (Move, error) {
	target, ok := n.graph.FirstOf(main)
	if !ok {
		return Move{HighestMainStep: highest}, nil
	}
	return n.Navigate(ctx, userID, highest, target)
}

// Advance moves from the current step to the next one and raises the
// watermark. Advancing from the last step stays put. Advancing from a step
// beyond the watermark fails with ErrNavigationGuard. Leaving a main step
// requires all of its marker fields to be answered, otherwise
// ErrStepIncomplete.
func (n *Navigator) Advance(ctx context.Context, userID string, highest int, from Step) (Move, error) {
	if !CanNavigate(highest, from) {
		return Move{HighestMainStep: highest}, fmt.Errorf("%w: %s", ErrNavigationGuard, from)
	}

	next, ok := n.graph.Next(from)
	if !ok {
		return Move{Step: from, HighestMainStep: highest}, nil
	}

	if next.Main() > from.Main() {
		if err := n.requireComplete(ctx, userID, from.Main()); err != nil {
			return Move{Step: from, HighestMainStep: highest}, err
		}
	}

	if err := n.store.SetCurrentStep(ctx, userID, next, n.now().UTC()); err != nil {
		return Move{Step: from, HighestMainStep: highest}, err
	}

	m := Move{Step: next, Moved: true, HighestMainStep: RaiseWatermark(highest, next)}
	if next.Main() > from.Main() {
		m.CompletedMain = from.Main()
	}
	return m, nil
}

func (n *Navigator) requireComplete(ctx context.Context, userID string, main int) error {
	ms, ok := n.graph.MainStep(main)
	if !ok {
		return fmt.Errorf("%w: main step %d", ErrInvalidStep, main)
	}

	p, err := n.store.Load(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if len(ms.Markers) == 0 || !p.HasAll(ms.Markers) {
		return fmt.Errorf("%w: main step %d", ErrStepIncomplete, main)
	}
	return nil
}
