package auth

import (
	"context"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is a registration request. Registration never authenticates;
// the account must verify its email first.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput updates the authenticated user's profile.
type ProfileInput struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"telefono,omitempty"`
	BirthDate string `json:"fechaNacimiento,omitempty"`
	Address   string `json:"direccion,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// API is the auth slice of the backend used by Session.
type API interface {
	Register(ctx context.Context, in RegisterInput) (*api.Envelope, error)
	Login(ctx context.Context, creds Credentials) (*api.Envelope, error)
	VerifyEmail(ctx context.Context, token string) (*api.Envelope, error)
	ResendVerification(ctx context.Context, email string) (*api.Envelope, error)
	RequestPasswordReset(ctx context.Context, email string) (*api.Envelope, error)
	ResetPassword(ctx context.Context, token, password string) (*api.Envelope, error)
	Profile(ctx context.Context, identifier string) (*api.Envelope, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*api.Envelope, error)
}

type Service struct {
	client *api.Client
	routes *api.Routes
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes}
}

type emailPayload struct {
	Email string `json:"email"`
}

type passwordPayload struct {
	Password string `json:"password"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.Register(), in)
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.Login(), creds)
}

func (s *Service) VerifyEmail(ctx context.Context, token string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.VerifyEmail(token))
}

func (s *Service) ResendVerification(ctx context.Context, email string) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.ResendVerification(), emailPayload{Email: email})
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.ResetPasswordRequest(), emailPayload{Email: email})
}

func (s *Service) ResetPassword(ctx context.Context, token, password string) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.ResetPassword(token), passwordPayload{Password: password})
}

func (s *Service) Profile(ctx context.Context, identifier string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.UserProfile(identifier))
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (*api.Envelope, error) {
	return s.client.Put(ctx, s.routes.UpdateProfile(), in)
}
