// Package admin is the back-office call group: catalog management, order
// oversight, and user administration. The backend enforces the admin role;
// the client only gates navigation.
package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

type Service struct {
	client *api.Client
	routes *api.Routes
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes}
}

func (s *Service) AllProducts(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.AllProductsAdmin())
}

// OrderParams filters the admin order listing. Zero values are omitted.
type OrderParams struct {
	Page          int
	Limit         int
	Status        string
	PaymentStatus string
	UserID        string
	Search        string
}

func (p OrderParams) query() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.PaymentStatus != "" {
		q.Set("paymentStatus", p.PaymentStatus)
	}
	if p.UserID != "" {
		q.Set("userId", p.UserID)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q.Encode()
}

func (s *Service) AllOrders(ctx context.Context, p OrderParams) (*api.Envelope, error) {
	u := s.routes.AllOrdersAdmin()
	if q := p.query(); q != "" {
		u += "?" + q
	}
	return s.client.Get(ctx, u)
}

// OrderStats returns aggregates for the dashboard. period is e.g. "30d";
// "all" means the full history.
func (s *Service) OrderStats(ctx context.Context, period string) (*api.Envelope, error) {
	u := s.routes.OrderStatsAdmin()
	if period != "" && period != "all" {
		u += "?period=" + url.QueryEscape(period)
	}
	return s.client.Get(ctx, u)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID, status string) (*api.Envelope, error) {
	return s.client.Patch(ctx, s.routes.OrderStatusAdmin(orderID), statusPayload{Status: status})
}

func (s *Service) OrderDetails(ctx context.Context, orderID string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.Order(orderID))
}

func (s *Service) AllUsers(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.AllUsers())
}

func (s *Service) UserStats(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.UserStats())
}

func (s *Service) GetUser(ctx context.Context, id string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.User(id))
}

func (s *Service) UpdateUser(ctx context.Context, id string, fields map[string]any) (*api.Envelope, error) {
	return s.client.Put(ctx, s.routes.User(id), fields)
}

// DeleteUser soft-deletes; RestoreUser reactivates.
func (s *Service) DeleteUser(ctx context.Context, id string) (*api.Envelope, error) {
	return s.client.Delete(ctx, s.routes.User(id))
}

func (s *Service) RestoreUser(ctx context.Context, id string) (*api.Envelope, error) {
	return s.client.Put(ctx, s.routes.RestoreUser(id), nil)
}
