// Package contact submits the storefront contact form.
package contact

import (
	"context"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type Service struct {
	client *api.Client
	routes *api.Routes
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes}
}

func (s *Service) Submit(ctx context.Context, f Form) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.Contact(), f)
}
