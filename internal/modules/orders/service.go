// Package orders is the shopper-side order call group.
package orders

import (
	"context"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

type Service struct {
	client *api.Client
	routes *api.Routes
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes}
}

// Item is one order line referencing a catalog product.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// ShippingAddress is collected at checkout.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateInput places an order from the current cart contents.
type CreateInput struct {
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Total           int64           `json:"total"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.Orders(), in)
}

func (s *Service) MyOrders(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.MyOrders())
}

func (s *Service) Get(ctx context.Context, orderID string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.Order(orderID))
}

func (s *Service) Cancel(ctx context.Context, orderID string) (*api.Envelope, error) {
	return s.client.Patch(ctx, s.routes.CancelOrder(orderID), nil)
}
