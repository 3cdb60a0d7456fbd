// Package auth holds the current session: the bearer credential lives in the
// durable store, the decoded user profile lives in memory. Successful
// authentication triggers downstream cart initialization through a hook.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/shared/apierr"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/shared/sanitize"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/store"
)

// User is the in-memory profile of the authenticated shopper.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	BirthDate string
	Address   string
	Avatar    string
	Role      string
	Verified  bool
}

func (u User) IsAdmin() bool { return u.Role == "admin" }

// verifiedType marks a verification response that carries an authenticated
// user payload.
const verifiedType = "VERIFIED"

var ErrNoToken = errors.New("login response does not contain token")

// Hooks connect the session to downstream state without an import cycle.
type Hooks struct {
	// OnAuthenticated runs after a session is established (login, restart
	// restore, email verification). The cart initializes here.
	OnAuthenticated func(ctx context.Context)
	// OnLogout runs after the session ends; the cart resets here.
	OnLogout func()
}

type Session struct {
	api   API
	creds store.CredentialStore
	hooks Hooks
	log   *slog.Logger

	mu            sync.Mutex
	user          *User
	authenticated bool
	loading       bool
	initializing  bool
}

func NewSession(apiGroup API, creds store.CredentialStore, hooks Hooks, log *slog.Logger) *Session {
	return &Session{api: apiGroup, creds: creds, hooks: hooks, log: log}
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Initialize restores a session from a persisted token. Any failure clears
// the credential silently; a stale token is not an error worth surfacing.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initializing {
		s.mu.Unlock()
		return
	}
	s.initializing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.initializing = false
		s.mu.Unlock()
	}()

	tok, ok := s.creds.Token()
	if !ok {
		return
	}

	identifier, err := identifierFromToken(tok)
	if err != nil || identifier == "" {
		s.clearAuth()
		return
	}

	env, err := s.api.Profile(ctx, identifier)
	if err != nil {
		s.log.Warn("session_restore_failed",
			slog.String("identifier", sanitize.Email(identifier)),
			slog.String("error", err.Error()),
		)
		s.clearAuth()
		return
	}

	u, ok := decodeUser(env)
	if !ok {
		s.clearAuth()
		return
	}

	s.mu.Lock()
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	s.authenticatedHook(ctx)
}

// Login authenticates, persists the token, loads the profile, and triggers
// cart initialization. A profile fetch failure does not fail the login; the
// session keeps a minimal profile built from the credentials.
func (s *Session) Login(ctx context.Context, creds Credentials) error {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.Login(ctx, creds)
	if err != nil {
		s.clearAuth()
		return err
	}
	if env.Token == "" {
		s.clearAuth()
		return apierr.Wrap(ErrNoToken)
	}

	if err := s.creds.SetToken(env.Token); err != nil {
		return apierr.Wrap(err)
	}

	u := User{Name: "User", Email: creds.Email, Role: "user"}
	if profileEnv, err := s.api.Profile(ctx, creds.Email); err == nil {
		if decoded, ok := decodeUser(profileEnv); ok {
			u = decoded
		}
	} else {
		s.log.Warn("profile_fetch_failed",
			slog.String("email", sanitize.Email(creds.Email)),
			slog.String("error", err.Error()),
		)
	}

	s.mu.Lock()
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	s.authenticatedHook(ctx)
	return nil
}

// Register submits the registration. The account is not authenticated until
// it verifies its email.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*api.Envelope, error) {
	s.setLoading(true)
	defer s.setLoading(false)
	return s.api.Register(ctx, in)
}

// VerifyEmail confirms the verification token. When the response carries the
// verified user payload the session authenticates immediately.
func (s *Session) VerifyEmail(ctx context.Context, token string) (*api.Envelope, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.VerifyEmail(ctx, token)
	if err != nil {
		return nil, err
	}

	if len(env.User) > 0 && env.Type == verifiedType {
		var w wireUser
		if jsonErr := json.Unmarshal(env.User, &w); jsonErr == nil {
			u := w.toUser()
			s.mu.Lock()
			s.user = &u
			s.authenticated = true
			s.mu.Unlock()
			s.authenticatedHook(ctx)
		}
	}
	return env, nil
}

func (s *Session) ResendVerification(ctx context.Context, email string) error {
	_, err := s.api.ResendVerification(ctx, email)
	return err
}

func (s *Session) RequestPasswordReset(ctx context.Context, email string) error {
	s.setLoading(true)
	defer s.setLoading(false)
	_, err := s.api.RequestPasswordReset(ctx, email)
	return err
}

func (s *Session) ResetPassword(ctx context.Context, token, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)
	_, err := s.api.ResetPassword(ctx, token, password)
	return err
}

func (s *Session) UpdateProfile(ctx context.Context, in ProfileInput) error {
	env, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	if u, ok := decodeUser(env); ok {
		s.mu.Lock()
		s.user = &u
		s.mu.Unlock()
	}
	return nil
}

// Logout discards the session and the persisted credential.
func (s *Session) Logout() {
	s.clearAuth()
	if s.hooks.OnLogout != nil {
		s.hooks.OnLogout()
	}
}

func (s *Session) clearAuth() {
	_ = s.creds.Clear()
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) authenticatedHook(ctx context.Context) {
	if s.hooks.OnAuthenticated != nil {
		s.hooks.OnAuthenticated(ctx)
	}
}

// identifierFromToken pulls the email (or id) claim out of the stored token
// without verifying the signature; the backend is the verifier, the client
// only needs an identifier for the profile lookup.
func identifierFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", err
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email, nil
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id, nil
	}
	if id, ok := claims["id"].(float64); ok {
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	}
	return "", nil
}
