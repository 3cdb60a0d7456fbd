package prefetch

import (
	"context"
	"log/slog"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/auth"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/products"
)

// Catalog is the slice of the product service the preloader warms.
type Catalog interface {
	List(ctx context.Context, p products.ListParams) (*api.Envelope, error)
	Get(ctx context.Context, id string) (*api.Envelope, error)
	Categories(ctx context.Context) (*api.Envelope, error)
	Featured(ctx context.Context, p products.ListParams) (*api.Envelope, error)
	Offers(ctx context.Context, p products.ListParams) (*api.Envelope, error)
}

// CartLoader is satisfied by the cart engine; prefetching the cart goes
// through Load so the warmed data lands in the state holder.
type CartLoader interface {
	Load(ctx context.Context) error
}

// SessionInfo is the read-only view of the auth session.
type SessionInfo interface {
	IsAuthenticated() bool
	User() (auth.User, bool)
}

// ProfileFetcher warms the profile endpoint.
type ProfileFetcher interface {
	Profile(ctx context.Context, identifier string) (*api.Envelope, error)
}

// BackOffice is the slice of the admin service warmed for admin routes.
type BackOffice interface {
	AllProducts(ctx context.Context) (*api.Envelope, error)
	AllOrders(ctx context.Context, p OrderParams) (*api.Envelope, error)
	OrderStats(ctx context.Context, period string) (*api.Envelope, error)
	AllUsers(ctx context.Context) (*api.Envelope, error)
	UserStats(ctx context.Context) (*api.Envelope, error)
}

// OrderParams mirrors the admin listing filter without importing the admin
// package (it imports nothing of ours, but the interface stays narrow).
type OrderParams struct {
	Page  int
	Limit int
}

// Preloader fires speculative fetches ahead of navigation. Every error is
// swallowed: a failed prefetch costs nothing but the warm cache it would
// have produced.
type Preloader struct {
	cache   *Cache
	catalog Catalog
	cart    CartLoader
	session SessionInfo
	profile ProfileFetcher
	admin   BackOffice
	log     *slog.Logger
}

func NewPreloader(cache *Cache, catalog Catalog, cart CartLoader, session SessionInfo, profile ProfileFetcher, admin BackOffice, log *slog.Logger) *Preloader {
	return &Preloader{
		cache:   cache,
		catalog: catalog,
		cart:    cart,
		session: session,
		profile: profile,
		admin:   admin,
		log:     log,
	}
}

func (p *Preloader) swallow(what string, err error) {
	if err != nil {
		p.log.Debug("prefetch_failed", slog.String("what", what), slog.String("error", err.Error()))
	}
}

func (p *Preloader) Categories(ctx context.Context) {
	const key = "categories"
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	if _, err := p.catalog.Categories(ctx); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

func (p *Preloader) FeaturedProducts(ctx context.Context) {
	const key = "featured-products"
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	if _, err := p.catalog.Featured(ctx, products.ListParams{Limit: 8}); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

func (p *Preloader) OnSaleProducts(ctx context.Context) {
	const key = "on-sale-products"
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	if _, err := p.catalog.Offers(ctx, products.ListParams{Limit: 8}); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

func (p *Preloader) Product(ctx context.Context, productID string) {
	key := "product-" + productID
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	if _, err := p.catalog.Get(ctx, productID); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

func (p *Preloader) ShopProducts(ctx context.Context) {
	const key = "shop-products"
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	p.Categories(ctx)
	if _, err := p.catalog.List(ctx, products.ListParams{Limit: 12, Page: 1}); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

func (p *Preloader) Cart(ctx context.Context) {
	if !p.session.IsAuthenticated() {
		return
	}
	const key = "cart"
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	if err := p.cart.Load(ctx); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

func (p *Preloader) UserProfile(ctx context.Context) {
	u, ok := p.session.User()
	if !p.session.IsAuthenticated() || !ok {
		return
	}
	identifier := u.Email
	if identifier == "" {
		identifier = u.ID
	}
	if identifier == "" {
		return
	}
	const key = "user-profile"
	if !p.cache.ShouldPrefetch(key) {
		return
	}
	if _, err := p.profile.Profile(ctx, identifier); err != nil {
		p.swallow(key, err)
		return
	}
	p.cache.MarkPrefetched(key)
}

// CheckoutData warms everything the checkout needs: cart plus profile.
func (p *Preloader) CheckoutData(ctx context.Context) {
	if !p.session.IsAuthenticated() {
		return
	}
	p.Cart(ctx)
	p.UserProfile(ctx)
}

// AdminData warms the back-office views. routeName matches the navigation
// route names in internal/nav.
func (p *Preloader) AdminData(ctx context.Context, routeName string) {
	u, ok := p.session.User()
	if !p.session.IsAuthenticated() || !ok || !u.IsAdmin() {
		return
	}
	switch routeName {
	case "AdminDashboard":
		_, err := p.admin.OrderStats(ctx, "")
		p.swallow("admin-stats", err)
		_, err = p.admin.AllProducts(ctx)
		p.swallow("admin-products", err)
		_, err = p.admin.AllOrders(ctx, OrderParams{})
		p.swallow("admin-orders", err)
		_, err = p.admin.AllUsers(ctx)
		p.swallow("admin-users", err)
	case "AdminProducts":
		_, err := p.admin.AllProducts(ctx)
		p.swallow("admin-products", err)
	case "AdminOrders":
		_, err := p.admin.AllOrders(ctx, OrderParams{})
		p.swallow("admin-orders", err)
		_, err = p.admin.OrderStats(ctx, "")
		p.swallow("admin-stats", err)
	case "AdminUsers":
		_, err := p.admin.AllUsers(ctx)
		p.swallow("admin-users", err)
		_, err = p.admin.UserStats(ctx)
		p.swallow("admin-user-stats", err)
	}
}

// PreloadCritical warms the data every shopper needs at startup, plus the
// session-bound data when authenticated. Errors never propagate.
func (p *Preloader) PreloadCritical(ctx context.Context) {
	p.Categories(ctx)
	p.FeaturedProducts(ctx)
	if p.session.IsAuthenticated() {
		p.UserProfile(ctx)
		p.Cart(ctx)
	}
}
