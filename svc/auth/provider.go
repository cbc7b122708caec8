package auth

import (
	"context"
	"errors"

	"github.com/vaultmarkets/onboarding/pkg/crm"
)

// Identity is an upstream user id and access token.
type Identity struct {
	UserID      string
	AccessToken string
}

// RegisterParams carries the fields needed to open an upstream account.
type RegisterParams struct {
	Email     string
	Password  string
	Currency  string
	CountryID string
}

// IdentityProvider is the upstream system of record for accounts.
//
// Implementations report bad credentials as ErrInvalidCredentials and
// transport or server failures as ErrProviderUnavailable.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) (Identity, error)
	Logout(ctx context.Context, userID, accessToken string) error
	Register(ctx context.Context, p RegisterParams) error
	// ForgotPassword starts a password reset. Unknown addresses are
	// ErrUnknownAccount and malformed ones ErrInvalidEmail.
	ForgotPassword(ctx context.Context, email string) error
}

// CRMProvider adapts a crm.Client to IdentityProvider.
type CRMProvider struct {
	client *crm.Client
}

// NewCRMProvider adapts client to IdentityProvider.
func NewCRMProvider(client *crm.Client) *CRMProvider {
	return &CRMProvider{client: client}
}

// Login authenticates with the CRM. Rejections map to ErrInvalidCredentials.
func (p *CRMProvider) Login(ctx context.Context, email, password string) (Identity, error) {
	id, err := p.client.Login(ctx, email, password)
	if err != nil {
		return Identity{}, translate(err, ErrInvalidCredentials)
	}
	return Identity{UserID: id.UserID, AccessToken: id.AccessToken}, nil
}

// Logout revokes the upstream access token.
func (p *CRMProvider) Logout(ctx context.Context, userID, accessToken string) error {
	if err := p.client.Logout(ctx, userID, accessToken); err != nil {
		return translate(err, ErrInvalidCredentials)
	}
	return nil
}

// Register creates the CRM account. Rejections map to ErrRegistrationFailed.
func (p *CRMProvider) Register(ctx context.Context, rp RegisterParams) error {
	err := p.client.Register(ctx, crm.Registration{
		Email:     rp.Email,
		Password:  rp.Password,
		Currency:  rp.Currency,
		CountryID: rp.CountryID,
	})
	if err != nil {
		return translate(err, ErrRegistrationFailed)
	}
	return nil
}

// ForgotPassword asks the CRM to send a reset link.
func (p *CRMProvider) ForgotPassword(ctx context.Context, email string) error {
	if _, err := p.client.ForgotPassword(ctx, email); err != nil {
		if errors.Is(err, crm.ErrUnknownEmail) {
			return errors.Join(ErrUnknownAccount, err)
		}
		return translate(err, ErrInvalidEmail)
	}
	return nil
}

// translate maps CRM errors onto this package's sentinels, keeping the
// original error in the chain for logging.
func translate(err error, rejected error) error {
	if errors.Is(err, crm.ErrRejected) {
		return errors.Join(rejected, err)
	}
	return errors.Join(ErrProviderUnavailable, err)
}
