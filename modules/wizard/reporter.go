package wizard

import (
	"context"
	"log/slog"

	"github.com/vaultmarkets/onboarding/pkg/crm"
	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/pkg/session"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

// StepReporter tells the system of record that a main step was completed.
// Implementations must not fail the request; errors are theirs to log.
type StepReporter interface {
	ReportCompleted(ctx context.Context, sess *session.Session, main onboarding.MainStep)
}

type nopReporter struct{}

func (nopReporter) ReportCompleted(context.Context, *session.Session, onboarding.MainStep) {}

// CRMReporter marks wizard steps completed in the CRM.
type CRMReporter struct {
	client *crm.Client
	log    *slog.Logger
}

// NewCRMReporter reports through client and logs failures to log.
func NewCRMReporter(client *crm.Client, log *slog.Logger) *CRMReporter {
	if log == nil {
		log = logger.Nop()
	}
	return &CRMReporter{client: client, log: log}
}

// ReportCompleted marks main as completed in the CRM. Steps without a CRM id
// are skipped; errors are logged and swallowed.
func (r *CRMReporter) ReportCompleted(ctx context.Context, sess *session.Session, main onboarding.MainStep) {
	if main.CRMStepID == "" {
		return
	}
	err := r.client.SetStepStatus(ctx, sess.UserID, sess.AccessToken, main.CRMStepID, crm.StepStatusCompleted)
	if err != nil {
		r.log.WarnContext(ctx, "failed to sync wizard step status",
			logger.Component("wizard"),
			logger.UserID(sess.UserID),
			logger.MainStep(main.Number),
			logger.Error(err),
		)
		return
	}
	r.log.InfoContext(ctx, "wizard step status synced",
		logger.Component("wizard"),
		logger.UserID(sess.UserID),
		logger.MainStep(main.Number),
	)
}
