// Package payments drives the hosted-gateway payment flow. No payment
// protocol lives here: the backend initiates the transaction with the
// gateway and hands back a redirect, the client only carries the flow state
// across that redirect.
package payments

import (
	"context"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/orders"
)

type Service struct {
	client *api.Client
	routes *api.Routes
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes}
}

type initiatePayload struct {
	ShippingAddress orders.ShippingAddress `json:"shippingAddress"`
}

// confirmPayload carries the gateway's single-use return token.
type confirmPayload struct {
	TokenWS string `json:"token_ws"`
}

type refundPayload struct {
	Amount int64 `json:"amount"`
}

func (s *Service) Initiate(ctx context.Context, addr orders.ShippingAddress) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.InitiatePayment(), initiatePayload{ShippingAddress: addr})
}

func (s *Service) Confirm(ctx context.Context, tokenWS string) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.ConfirmPayment(), confirmPayload{TokenWS: tokenWS})
}

func (s *Service) Status(ctx context.Context, orderID string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.PaymentStatus(orderID))
}

// Refund refunds an order; amount 0 means a full refund.
func (s *Service) Refund(ctx context.Context, orderID string, amount int64) (*api.Envelope, error) {
	if amount > 0 {
		return s.client.Post(ctx, s.routes.RefundPayment(orderID), refundPayload{Amount: amount})
	}
	return s.client.Post(ctx, s.routes.RefundPayment(orderID), struct{}{})
}
