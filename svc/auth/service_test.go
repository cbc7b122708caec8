package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultmarkets/onboarding/pkg/cookie"
	"github.com/vaultmarkets/onboarding/pkg/seal"
	"github.com/vaultmarkets/onboarding/svc/auth"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

const testSecret = "remember-me-test-secret"

type fakeProvider struct {
	mu          sync.Mutex
	accounts    map[string]string
	unavailable bool
	logoutErr   error
	logins      int
	logouts     int
	registered  []auth.RegisterParams
	resets      []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]string{"ada@example.com": "Secr3t:pw"}}
}

func (f *fakeProvider) Login(_ context.Context, email, password string) (auth.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.unavailable {
		return auth.Identity{}, auth.ErrProviderUnavailable
	}
	if pw, ok := f.accounts[email]; !ok || pw != password {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}
	return auth.Identity{UserID: "1042", AccessToken: "tok-" + email}, nil
}

func (f *fakeProvider) Logout(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.logoutErr
}

func (f *fakeProvider) Register(_ context.Context, p auth.RegisterParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[p.Email]; ok {
		return auth.ErrRegistrationFailed
	}
	f.accounts[p.Email] = p.Password
	f.registered = append(f.registered, p)
	return nil
}

func (f *fakeProvider) ForgotPassword(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return auth.ErrProviderUnavailable
	}
	if email == "not-an-email" {
		return auth.ErrInvalidEmail
	}
	if _, ok := f.accounts[email]; !ok {
		return auth.ErrUnknownAccount
	}
	f.resets = append(f.resets, email)
	return nil
}

func setup(t *testing.T) (*auth.Service, *fakeProvider, *cookie.Manager, *onboarding.MemoryStore) {
	t.Helper()
	cookies, err := cookie.New(testSecret)
	require.NoError(t, err)
	provider := newFakeProvider()
	store := onboarding.NewMemoryStore()
	return auth.NewService(provider, cookies, store), provider, cookies, store
}

func TestService_AutoLogin(t *testing.T) {
	t.Parallel()

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()
		svc, provider, _, _ := setup(t)

		res, err := svc.AutoLogin(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, auth.StateNoCredentials, res.State)
		assert.Nil(t, res.Cookie)
		assert.Zero(t, provider.logins)
	})

	t.Run("valid cookie", func(t *testing.T) {
		t.Parallel()
		svc, provider, cookies, _ := setup(t)

		d, err := cookies.RememberMe("ada@example.com", "Secr3t:pw")
		require.NoError(t, err)

		res, err := svc.AutoLogin(context.Background(), d.Value)
		require.NoError(t, err)
		assert.Equal(t, auth.StateSuccess, res.State)
		assert.Equal(t, "1042", res.Session.UserID)
		assert.Equal(t, auth.IssuedViaAutoLogin, res.Session.IssuedVia)
		assert.Nil(t, res.Cookie)
		assert.Equal(t, 1, provider.logins)
	})

	tests := []struct {
		name   string
		value  func(t *testing.T) string
		reason auth.FailReason
		logins int
	}{
		{
			name:   "not base64",
			value:  func(*testing.T) string { return "%%%not-a-seal%%%" },
			reason: auth.FailCorruptCredentials,
		},
		{
			name: "tampered",
			value: func(t *testing.T) string {
				v, err := seal.Seal("ada@example.com:Secr3t:pw", testSecret)
				require.NoError(t, err)
				b := []byte(v)
				if b[30] == 'A' {
					b[30] = 'B'
				} else {
					b[30] = 'A'
				}
				return string(b)
			},
			reason: auth.FailCorruptCredentials,
		},
		{
			name: "sealed with another secret",
			value: func(t *testing.T) string {
				v, err := seal.Seal("ada@example.com:Secr3t:pw", "other-secret")
				require.NoError(t, err)
				return v
			},
			reason: auth.FailCorruptCredentials,
		},
		{
			name: "no separator",
			value: func(t *testing.T) string {
				v, err := seal.Seal("ada@example.com", testSecret)
				require.NoError(t, err)
				return v
			},
			reason: auth.FailMalformedCredentials,
		},
		{
			name: "empty password",
			value: func(t *testing.T) string {
				v, err := seal.Seal("ada@example.com:", testSecret)
				require.NoError(t, err)
				return v
			},
			reason: auth.FailMalformedCredentials,
		},
		{
			name: "password changed upstream",
			value: func(t *testing.T) string {
				v, err := seal.Seal("ada@example.com:old-password", testSecret)
				require.NoError(t, err)
				return v
			},
			reason: auth.FailUpstreamRejected,
			logins: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, provider, cookies, _ := setup(t)

			res, err := svc.AutoLogin(context.Background(), tt.value(t))
			require.ErrorIs(t, err, auth.ErrAutoLoginFailed)
			assert.Equal(t, auth.StateFailed, res.State)
			assert.Equal(t, tt.reason, res.Reason)
			assert.Empty(t, res.Session.UserID)
			assert.Equal(t, tt.logins, provider.logins)

			require.NotNil(t, res.Cookie)
			assert.True(t, res.Cookie.IsClear())
			assert.Equal(t, cookies.Name(), res.Cookie.Name)
		})
	}
}

func TestService_AutoLogin_FailuresLookAlike(t *testing.T) {
	t.Parallel()

	svc, provider, _, _ := setup(t)
	provider.unavailable = true

	corrupt, corruptErr := svc.AutoLogin(context.Background(), "garbage")
	v, err := seal.Seal("ada@example.com:Secr3t:pw", testSecret)
	require.NoError(t, err)
	upstream, upstreamErr := svc.AutoLogin(context.Background(), v)

	assert.Equal(t, corruptErr.Error(), upstreamErr.Error())
	assert.Equal(t, *corrupt.Cookie, *upstream.Cookie)
	assert.NotEqual(t, corrupt.Reason, upstream.Reason)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	t.Run("with remember me", func(t *testing.T) {
		t.Parallel()
		svc, _, cookies, _ := setup(t)

		res, err := svc.Login(context.Background(), " ada@example.com ", "Secr3t:pw", true)
		require.NoError(t, err)
		assert.Equal(t, auth.IssuedViaPassword, res.Session.IssuedVia)
		require.NotNil(t, res.Cookie)

		email, pw, err := cookies.Open(res.Cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", email)
		assert.Equal(t, "Secr3t:pw", pw)
	})

	t.Run("without remember me", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := setup(t)

		res, err := svc.Login(context.Background(), "ada@example.com", "Secr3t:pw", false)
		require.NoError(t, err)
		assert.Nil(t, res.Cookie)
	})

	t.Run("bad password", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := setup(t)

		res, err := svc.Login(context.Background(), "ada@example.com", "nope", true)
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.True(t, auth.IsCredentialError(err))
		assert.Equal(t, auth.StateFailed, res.State)
		assert.Nil(t, res.Cookie)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc, provider, _, _ := setup(t)

		_, err := svc.Login(context.Background(), "  ", "pw", false)
		require.ErrorIs(t, err, auth.ErrMissingCredentials)
		assert.Zero(t, provider.logins)
	})

	t.Run("upstream down", func(t *testing.T) {
		t.Parallel()
		svc, provider, _, _ := setup(t)
		provider.unavailable = true

		_, err := svc.Login(context.Background(), "ada@example.com", "Secr3t:pw", false)
		require.ErrorIs(t, err, auth.ErrProviderUnavailable)
		assert.False(t, auth.IsCredentialError(err))
	})
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	svc, provider, _, _ := setup(t)

	res, err := svc.Register(context.Background(), auth.RegisterParams{
		Email:    "grace@example.com",
		Password: "hopper",
		Currency: "USD",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, auth.IssuedViaRegistration, res.Session.IssuedVia)
	assert.NotNil(t, res.Cookie)
	require.Len(t, provider.registered, 1)
	assert.Equal(t, "USD", provider.registered[0].Currency)

	_, err = svc.Register(context.Background(), auth.RegisterParams{
		Email:    "grace@example.com",
		Password: "hopper",
	}, false)
	require.ErrorIs(t, err, auth.ErrRegistrationFailed)
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	svc, provider, cookies, store := setup(t)
	ctx := context.Background()

	_, err := store.Merge(ctx, "1042", map[string]any{"first-name": "Ada"}, time.Now())
	require.NoError(t, err)

	provider.logoutErr = errors.New("upstream exploded")
	d := svc.Logout(ctx, auth.Session{UserID: "1042", AccessToken: "tok"})

	assert.Equal(t, 1, provider.logouts)
	assert.True(t, d.IsClear())
	assert.Equal(t, cookies.Name(), d.Name)

	_, err = store.Load(ctx, "1042")
	require.ErrorIs(t, err, onboarding.ErrNotFound)

	rec := httptest.NewRecorder()
	cookie.Write(rec, d)
	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	assert.Equal(t, -1, res.Cookies()[0].MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, res.Cookies()[0].SameSite)
}

func TestService_ForgotPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		email       string
		unavailable bool
		wantErr     error
		wantResets  []string
	}{
		{name: "known account", email: " ada@example.com ", wantResets: []string{"ada@example.com"}},
		{name: "unknown account looks the same", email: "eve@example.com"},
		{name: "blank email", email: "  ", wantErr: auth.ErrInvalidEmail},
		{name: "malformed email", email: "not-an-email", wantErr: auth.ErrInvalidEmail},
		{name: "provider down", email: "ada@example.com", unavailable: true, wantErr: auth.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, provider, _, _ := setup(t)
			provider.unavailable = tt.unavailable

			err := svc.ForgotPassword(context.Background(), tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantResets, provider.resets)
		})
	}
}
