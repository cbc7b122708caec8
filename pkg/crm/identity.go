package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Identity is what a successful login returns.
type Identity struct {
	UserID      string
	AccessToken string
}

// Login exchanges email and password for an identity.
func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	env, err := c.call(ctx, apiLogin, "user_login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if err != nil {
		return Identity{}, err
	}

	var rows []struct {
		User  flexString `json:"user"`
		Token string     `json:"authentication_token"`
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return Identity{}, fmt.Errorf("%w: user_login: decode data: %w", ErrUnavailable, err)
	}
	if len(rows) == 0 || rows[0].Token == "" || rows[0].User == "" {
		return Identity{}, fmt.Errorf("%w: user_login: no identity in response", ErrRejected)
	}

	return Identity{UserID: string(rows[0].User), AccessToken: rows[0].Token}, nil
}

// Logout invalidates the access token upstream.
func (c *Client) Logout(ctx context.Context, userID, accessToken string) error {
	_, err := c.call(ctx, apiAccounts, "user_logout", url.Values{
		"user":         {userID},
		"access_token": {accessToken},
	})
	return err
}

// Registration holds the fields required to open a CRM account.
type Registration struct {
	Email     string
	Password  string
	CountryID string
	Currency  string
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, r Registration) error {
	form := url.Values{
		"email":    {r.Email},
		"password": {r.Password},
		"currency": {r.Currency},
	}
	if r.CountryID != "" {
		form.Set("country_id", r.CountryID)
	}
	_, err := c.call(ctx, apiLogin, "create_user", form)
	return err
}

// Wizard step statuses understood by the CRM.
const (
	StepStatusCompleted  = "completed"
	StepStatusInProgress = "in_progress"
)

// SetStepStatus records the status of an onboarding wizard step.
func (c *Client) SetStepStatus(ctx context.Context, userID, accessToken, stepID, status string) error {
	if stepID == "" || status == "" {
		return errors.New("crm: step id and status are required")
	}
	_, err := c.call(ctx, apiAccounts, "set_onboard_wizard_user_step_status", url.Values{
		"user":         {userID},
		"access_token": {accessToken},
		"owiz_step_id": {stepID},
		"status":       {status},
	})
	return err
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(strings.TrimSpace(n.String()))
	return nil
}
