package cart

import (
	"context"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

// API is the backend cart surface the engine talks to. The concrete Service
// below is the production implementation; tests script their own.
type API interface {
	Get(ctx context.Context) (*api.Envelope, error)
	Summary(ctx context.Context) (*api.Envelope, error)
	Add(ctx context.Context, productID string, quantity int) (*api.Envelope, error)
	Update(ctx context.Context, productID string, quantity int) (*api.Envelope, error)
	Remove(ctx context.Context, productID string) (*api.Envelope, error)
	Clear(ctx context.Context) (*api.Envelope, error)
}

type Service struct {
	client *api.Client
	routes *api.Routes
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes}
}

type itemPayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Service) Get(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.Cart())
}

func (s *Service) Summary(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.CartSummary())
}

func (s *Service) Add(ctx context.Context, productID string, quantity int) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.CartAdd(), itemPayload{ProductID: productID, Quantity: quantity})
}

func (s *Service) Update(ctx context.Context, productID string, quantity int) (*api.Envelope, error) {
	return s.client.Put(ctx, s.routes.CartUpdate(), itemPayload{ProductID: productID, Quantity: quantity})
}

func (s *Service) Remove(ctx context.Context, productID string) (*api.Envelope, error) {
	return s.client.Delete(ctx, s.routes.CartRemove(productID))
}

func (s *Service) Clear(ctx context.Context) (*api.Envelope, error) {
	return s.client.Delete(ctx, s.routes.CartClear())
}
