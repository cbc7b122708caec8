package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/vaultmarkets/onboarding/pkg/logger"
)

var (
	ErrInvalidField = errors.New("onboarding.invalid_field")

	fieldName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)
)

// ServiceOption configures a ProgressService.
type ServiceOption func(*ProgressService)

// WithLogger sets the logger used for ignored writes.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *ProgressService) { s.log = log }
}

// WithClock replaces time.Now for LastUpdated stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ProgressService) { s.now = now }
}

// ProgressService validates progress writes before they reach a Store.
type ProgressService struct {
	store Store
	graph *Graph
	log   *slog.Logger
	now   func() time.Time
}

// NewProgressService wraps store with validation against graph.
func NewProgressService(store Store, graph *Graph, opts ...ServiceOption) *ProgressService {
	s := &ProgressService{
		store: store,
		graph: graph,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns the layout the service validates against.
func (s *ProgressService) Graph() *Graph { return s.graph }

// Load returns the stored progress or ErrNotFound.
func (s *ProgressService) Load(ctx context.Context, userID string) (*Progress, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return s.store.Load(ctx, userID)
}

// Merge writes answers. Metadata keys are not answers: a string currentStep
// is applied as the step pointer under the same rules as SetCurrentStep, and
// lastUpdated is always server-set. highest is the caller's watermark.
func (s *ProgressService) Merge(ctx context.Context, userID string, fields map[string]any, highest int) (*Progress, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	for k := range fields {
		if !isMetadata(k) && !fieldName.MatchString(k) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, k)
		}
	}

	if raw, ok := fields[FieldCurrentStep].(string); ok {
		if err := s.SetCurrentStep(ctx, userID, raw, highest); err != nil {
			return nil, err
		}
	}

	return s.store.Merge(ctx, userID, answers(fields), s.now().UTC())
}

// SetCurrentStep records the step pointer. Unknown steps, and steps whose
// main step lies beyond the highest main step reached, are logged and
// ignored.
func (s *ProgressService) SetCurrentStep(ctx context.Context, userID, raw string, highest int) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	step, ok := s.graph.Lookup(raw)
	if !ok {
		s.log.WarnContext(ctx, "ignoring invalid current step",
			logger.Component("onboarding"),
			logger.UserID(userID),
			logger.Step(raw),
		)
		return nil
	}
	if !CanNavigate(highest, step) {
		s.log.WarnContext(ctx, "ignoring current step beyond watermark",
			logger.Component("onboarding"),
			logger.UserID(userID),
			logger.Step(raw),
			logger.MainStep(highest),
		)
		return nil
	}
	return s.store.SetCurrentStep(ctx, userID, step, s.now().UTC())
}

// Clear removes everything stored for the user.
func (s *ProgressService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	return s.store.Clear(ctx, userID)
}
