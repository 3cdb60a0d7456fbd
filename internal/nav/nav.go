// Package nav holds the route table and the navigation guard. Routes carry
// the auth metadata the guard enforces; destination-specific prefetches fire
// before the guard decision so warmed data is ready when the view renders.
package nav

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/auth"
)

// Route names. Guards and prefetch policy key off the name, not the path.
const (
	Home               = "Home"
	Shop               = "Shop"
	Offers             = "Offers"
	ProductDetail      = "ProductDetail"
	Cart               = "Cart"
	Checkout           = "Checkout"
	EmailVerification  = "EmailVerification"
	ResetPassword      = "ResetPassword"
	Profile            = "Profile"
	Settings           = "Settings"
	AdminDashboard     = "AdminDashboard"
	AdminProducts      = "AdminProducts"
	AdminCreateProduct = "AdminCreateProduct"
	AdminOrders        = "AdminOrders"
	AdminUsers         = "AdminUsers"
	PaymentProcessing  = "PaymentProcessing"
	PaymentSuccess     = "PaymentSuccess"
	PaymentError       = "PaymentError"
	PaymentReturn      = "PaymentReturn"
	UserOrders         = "UserOrders"
	Contact            = "Contact"
)

type Route struct {
	Name          string
	Path          string
	RequiresAuth  bool
	RequiresAdmin bool
}

var routes = []Route{
	{Name: Home, Path: "/"},
	{Name: Shop, Path: "/shop"},
	{Name: Offers, Path: "/offers"},
	{Name: ProductDetail, Path: "/product/:id"},
	{Name: Cart, Path: "/cart"},
	{Name: Checkout, Path: "/checkout"},
	{Name: EmailVerification, Path: "/verify-email"},
	{Name: ResetPassword, Path: "/resetpassword"},
	{Name: Profile, Path: "/profile", RequiresAuth: true},
	{Name: Settings, Path: "/settings", RequiresAuth: true},
	{Name: AdminDashboard, Path: "/admin", RequiresAuth: true, RequiresAdmin: true},
	{Name: AdminProducts, Path: "/admin/products", RequiresAuth: true, RequiresAdmin: true},
	{Name: AdminCreateProduct, Path: "/admin/products/new", RequiresAuth: true, RequiresAdmin: true},
	{Name: AdminOrders, Path: "/admin/orders", RequiresAuth: true, RequiresAdmin: true},
	{Name: AdminUsers, Path: "/admin/users", RequiresAuth: true, RequiresAdmin: true},
	{Name: PaymentProcessing, Path: "/payment/processing", RequiresAuth: true},
	{Name: PaymentSuccess, Path: "/payment/success", RequiresAuth: true},
	{Name: PaymentError, Path: "/payment/error", RequiresAuth: true},
	{Name: PaymentReturn, Path: "/payment/return", RequiresAuth: true},
	{Name: UserOrders, Path: "/orders", RequiresAuth: true},
	{Name: Contact, Path: "/contact"},
}

var routesByName = func() map[string]Route {
	m := make(map[string]Route, len(routes))
	for _, r := range routes {
		m[r.Name] = r
	}
	return m
}()

// Lookup returns the route registered under name.
func Lookup(name string) (Route, bool) {
	r, ok := routesByName[name]
	return r, ok
}

// Routes returns the full table in registration order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Request is a resolved navigation target: the route plus its runtime
// parameters and query string.
type Request struct {
	Name   string
	Params map[string]string
	Query  url.Values
}

func (r Request) param(key string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[key]
}

func (r Request) query(key string) string {
	if r.Query == nil {
		return ""
	}
	return r.Query.Get(key)
}

// Decision is the guard's verdict. When Allowed is false, RedirectTo names
// the route to send the caller to instead.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

var allow = Decision{Allowed: true}
var toHome = Decision{RedirectTo: Home}

// Session is the slice of auth state the guard consults.
type Session interface {
	IsAuthenticated() bool
	User() (auth.User, bool)
}

// Prefetcher is the slice of the preloader driven by navigation.
type Prefetcher interface {
	ShopProducts(ctx context.Context)
	Product(ctx context.Context, id string)
	Cart(ctx context.Context)
	CheckoutData(ctx context.Context)
	OnSaleProducts(ctx context.Context)
	AdminData(ctx context.Context, routeName string)
}

// Guard runs the prefetch policy and the auth checks for each navigation.
type Guard struct {
	session  Session
	prefetch Prefetcher
	log      *slog.Logger

	// background prefetches are tracked so tests and shutdown can wait.
	wg sync.WaitGroup

	// blockTimeout caps how long a critical-route prefetch may delay
	// navigation.
	blockTimeout time.Duration
}

func NewGuard(session Session, prefetch Prefetcher, log *slog.Logger) *Guard {
	return &Guard{
		session:      session,
		prefetch:     prefetch,
		log:          log,
		blockTimeout: 5 * time.Second,
	}
}

// criticalRoutes wait for their prefetch before the navigation proceeds;
// every other route prefetches in the background.
var criticalRoutes = map[string]bool{
	Checkout:       true,
	AdminDashboard: true,
}

// Navigate runs the destination's prefetch and returns the guard decision.
// Prefetch failures never influence the decision.
func (g *Guard) Navigate(ctx context.Context, req Request) Decision {
	g.runPrefetch(ctx, req)
	return g.decide(req)
}

// Wait blocks until background prefetches started so far have finished.
func (g *Guard) Wait() {
	g.wg.Wait()
}

func (g *Guard) runPrefetch(ctx context.Context, req Request) {
	fn := g.prefetchFor(req)
	if fn == nil {
		return
	}
	if criticalRoutes[req.Name] {
		ctx, cancel := context.WithTimeout(ctx, g.blockTimeout)
		defer cancel()
		start := time.Now()
		fn(ctx)
		g.log.Debug("navigation_prefetch_waited",
			slog.String("route", req.Name),
			slog.Duration("took", time.Since(start)))
		return
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn(context.WithoutCancel(ctx))
	}()
}

func (g *Guard) prefetchFor(req Request) func(context.Context) {
	switch req.Name {
	case Shop:
		return g.prefetch.ShopProducts
	case ProductDetail:
		id := req.param("id")
		if id == "" {
			return nil
		}
		return func(ctx context.Context) { g.prefetch.Product(ctx, id) }
	case Cart:
		return g.prefetch.Cart
	case Checkout:
		return g.prefetch.CheckoutData
	case Offers:
		return g.prefetch.OnSaleProducts
	case AdminDashboard, AdminProducts, AdminOrders, AdminUsers:
		name := req.Name
		return func(ctx context.Context) { g.prefetch.AdminData(ctx, name) }
	}
	return nil
}

func (g *Guard) decide(req Request) Decision {
	route, ok := Lookup(req.Name)
	if !ok {
		return toHome
	}
	if !route.RequiresAuth {
		return allow
	}

	// The payment gateway redirects the shopper back with a single-use
	// token; the backend validates it, so the session check is waived.
	if route.Name == PaymentReturn && req.query("token_ws") != "" {
		return allow
	}
	// Payment errors carry their context in the query string; requiring a
	// session here would loop the shopper back through the failure.
	if route.Name == PaymentError && req.query("message") != "" {
		return allow
	}

	if !g.session.IsAuthenticated() {
		return toHome
	}
	if route.RequiresAdmin {
		u, ok := g.session.User()
		if !ok || !u.IsAdmin() {
			return toHome
		}
	}
	return allow
}
