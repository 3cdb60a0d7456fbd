package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/shared/apierr"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/store"
)

type mockAuthAPI struct {
	loginEnv   *api.Envelope
	loginErr   error
	profileEnv *api.Envelope
	profileErr error
	verifyEnv  *api.Envelope
	verifyErr  error

	profileIdentifier string
}

func (m *mockAuthAPI) Register(context.Context, RegisterInput) (*api.Envelope, error) {
	return &api.Envelope{Success: true}, nil
}

func (m *mockAuthAPI) Login(context.Context, Credentials) (*api.Envelope, error) {
	return m.loginEnv, m.loginErr
}

func (m *mockAuthAPI) VerifyEmail(context.Context, string) (*api.Envelope, error) {
	return m.verifyEnv, m.verifyErr
}

func (m *mockAuthAPI) ResendVerification(context.Context, string) (*api.Envelope, error) {
	return &api.Envelope{Success: true}, nil
}

func (m *mockAuthAPI) RequestPasswordReset(context.Context, string) (*api.Envelope, error) {
	return &api.Envelope{Success: true}, nil
}

func (m *mockAuthAPI) ResetPassword(context.Context, string, string) (*api.Envelope, error) {
	return &api.Envelope{Success: true}, nil
}

func (m *mockAuthAPI) Profile(_ context.Context, identifier string) (*api.Envelope, error) {
	m.profileIdentifier = identifier
	return m.profileEnv, m.profileErr
}

func (m *mockAuthAPI) UpdateProfile(context.Context, ProfileInput) (*api.Envelope, error) {
	return &api.Envelope{Success: true}, nil
}

// unsignedToken builds a JWT-shaped token with the given claims; the client
// never verifies signatures.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

type hookSpy struct {
	authenticated int
	loggedOut     int
}

func (h *hookSpy) hooks() Hooks {
	return Hooks{
		OnAuthenticated: func(context.Context) { h.authenticated++ },
		OnLogout:        func() { h.loggedOut++ },
	}
}

func newTestSession(backend *mockAuthAPI, creds store.CredentialStore) (*Session, *hookSpy) {
	spy := &hookSpy{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSession(backend, creds, spy.hooks(), log), spy
}

func profileEnvelope(body string) *api.Envelope {
	return &api.Envelope{Success: true, Data: json.RawMessage(body)}
}

func TestLoginStoresTokenAndProfile(t *testing.T) {
	backend := &mockAuthAPI{
		loginEnv:   &api.Envelope{Success: true, Token: "tok-123"},
		profileEnv: profileEnvelope(`{"id":"u1","name":"Ada","email":"ada@example.com","role":"user","isVerified":true}`),
	}
	creds := store.NewMemCredentials()
	s, spy := newTestSession(backend, creds)

	require.NoError(t, s.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "pw"}))

	assert.True(t, s.IsAuthenticated())
	tok, ok := creds.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", tok)

	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "Ada", u.Name)
	assert.True(t, u.Verified)
	assert.Equal(t, 1, spy.authenticated, "cart initialization hook fires once")
}

func TestLoginWithoutTokenFails(t *testing.T) {
	backend := &mockAuthAPI{loginEnv: &api.Envelope{Success: true}}
	s, spy := newTestSession(backend, store.NewMemCredentials())

	err := s.Login(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, spy.authenticated)
}

func TestLoginSurvivesProfileFailure(t *testing.T) {
	backend := &mockAuthAPI{
		loginEnv:   &api.Envelope{Success: true, Token: "tok"},
		profileErr: apierr.New("", http.StatusInternalServerError, ""),
	}
	s, spy := newTestSession(backend, store.NewMemCredentials())

	require.NoError(t, s.Login(context.Background(), Credentials{Email: "a@b.com", Password: "pw"}))

	assert.True(t, s.IsAuthenticated())
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "user", u.Role)
	assert.Equal(t, 1, spy.authenticated)
}

func TestInitializeRestoresSessionFromToken(t *testing.T) {
	backend := &mockAuthAPI{
		profileEnv: profileEnvelope(`{"_id":"u9","name":"Grace","email":"grace@example.com","role":"admin"}`),
	}
	creds := store.NewMemCredentials()
	require.NoError(t, creds.SetToken(unsignedToken(t, map[string]any{"email": "grace@example.com"})))
	s, spy := newTestSession(backend, creds)

	s.Initialize(context.Background())

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "grace@example.com", backend.profileIdentifier)
	u, _ := s.User()
	assert.Equal(t, "u9", u.ID)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, 1, spy.authenticated)
}

func TestInitializeClearsCredentialOnFailure(t *testing.T) {
	backend := &mockAuthAPI{profileErr: apierr.New("", http.StatusUnauthorized, "")}
	creds := store.NewMemCredentials()
	require.NoError(t, creds.SetToken(unsignedToken(t, map[string]any{"email": "x@y.com"})))
	s, spy := newTestSession(backend, creds)

	s.Initialize(context.Background())

	assert.False(t, s.IsAuthenticated())
	_, ok := creds.Token()
	assert.False(t, ok, "stale token must be discarded")
	assert.Zero(t, spy.authenticated)
}

func TestInitializeWithMalformedTokenClearsCredential(t *testing.T) {
	creds := store.NewMemCredentials()
	require.NoError(t, creds.SetToken("not-a-jwt"))
	s, _ := newTestSession(&mockAuthAPI{}, creds)

	s.Initialize(context.Background())

	assert.False(t, s.IsAuthenticated())
	_, ok := creds.Token()
	assert.False(t, ok)
}

func TestVerifyEmailAuthenticatesOnVerifiedPayload(t *testing.T) {
	backend := &mockAuthAPI{
		verifyEnv: &api.Envelope{
			Success: true,
			Type:    "VERIFIED",
			User:    json.RawMessage(`{"id":"u2","name":"Eve","email":"eve@example.com"}`),
		},
	}
	s, spy := newTestSession(backend, store.NewMemCredentials())

	_, err := s.VerifyEmail(context.Background(), "verify-token")
	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, 1, spy.authenticated)
}

func TestVerifyEmailWithoutUserStaysAnonymous(t *testing.T) {
	backend := &mockAuthAPI{verifyEnv: &api.Envelope{Success: true, Message: "already verified"}}
	s, spy := newTestSession(backend, store.NewMemCredentials())

	_, err := s.VerifyEmail(context.Background(), "verify-token")
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, spy.authenticated)
}

func TestLogoutClearsEverything(t *testing.T) {
	backend := &mockAuthAPI{
		loginEnv:   &api.Envelope{Success: true, Token: "tok"},
		profileEnv: profileEnvelope(`{"id":"u1","email":"a@b.com"}`),
	}
	creds := store.NewMemCredentials()
	s, spy := newTestSession(backend, creds)
	require.NoError(t, s.Login(context.Background(), Credentials{Email: "a@b.com", Password: "pw"}))

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	_, ok := creds.Token()
	assert.False(t, ok)
	_, ok = s.User()
	assert.False(t, ok)
	assert.Equal(t, 1, spy.loggedOut)
}
