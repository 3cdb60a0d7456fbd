// Package products is the catalog call group: listings, categories, featured
// and on-sale selections, and the admin-side catalog mutations.
package products

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

type Service struct {
	client *api.Client
	routes *api.Routes

	// now feeds the cache-busting query parameter.
	now func() time.Time
}

func NewService(client *api.Client, routes *api.Routes) *Service {
	return &Service{client: client, routes: routes, now: time.Now}
}

// ListParams narrows a product listing. Zero values are omitted.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

func (s *Service) listQuery(p ListParams) string {
	q := url.Values{}
	// Listings must never be served from an intermediary cache.
	q.Set("_t", strconv.FormatInt(s.now().UnixMilli(), 10))
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q.Encode()
}

func (s *Service) List(ctx context.Context, p ListParams) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.Products()+"?"+s.listQuery(p), api.WithNoCache())
}

func (s *Service) Get(ctx context.Context, id string) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.Product(id))
}

func (s *Service) Categories(ctx context.Context) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.ProductCategories())
}

func (s *Service) Featured(ctx context.Context, p ListParams) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.FeaturedProducts()+"?"+s.listQuery(p), api.WithNoCache())
}

func (s *Service) Offers(ctx context.Context, p ListParams) (*api.Envelope, error) {
	return s.client.Get(ctx, s.routes.OfferProducts()+"?"+s.listQuery(p), api.WithNoCache())
}

// Input creates or updates a catalog entry.
type Input struct {
	Name               string `json:"name"`
	Price              int64  `json:"price"`
	Image              string `json:"image,omitempty"`
	Stock              int    `json:"stock"`
	Category           string `json:"category,omitempty"`
	Description        string `json:"description,omitempty"`
	Featured           bool   `json:"featured,omitempty"`
	IsOnSale           bool   `json:"isOnSale,omitempty"`
	DiscountPercentage int    `json:"discountPercentage,omitempty"`
}

func (s *Service) Create(ctx context.Context, in Input) (*api.Envelope, error) {
	return s.client.Post(ctx, s.routes.Products(), in)
}

// CreateMultipart uploads a product with an image attachment.
func (s *Service) CreateMultipart(ctx context.Context, contentType string, body io.Reader) (*api.Envelope, error) {
	return s.client.PostRaw(ctx, s.routes.Products(), contentType, body)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*api.Envelope, error) {
	return s.client.Put(ctx, s.routes.Product(id), in)
}

func (s *Service) UpdateMultipart(ctx context.Context, id, contentType string, body io.Reader) (*api.Envelope, error) {
	return s.client.PutRaw(ctx, s.routes.Product(id), contentType, body)
}

func (s *Service) Delete(ctx context.Context, id string) (*api.Envelope, error) {
	return s.client.Delete(ctx, s.routes.Product(id))
}

type stockPayload struct {
	Stock int `json:"stock"`
}

func (s *Service) UpdateStock(ctx context.Context, id string, stock int) (*api.Envelope, error) {
	return s.client.Patch(ctx, s.routes.ProductStock(id), stockPayload{Stock: stock})
}
