package nav

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/auth"
)

type guardSession struct {
	authed  bool
	user    auth.User
	hasUser bool
}

func (s *guardSession) IsAuthenticated() bool { return s.authed }
func (s *guardSession) User() (auth.User, bool) { return s.user, s.hasUser }

type recordingPrefetcher struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingPrefetcher) record(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
}

func (r *recordingPrefetcher) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recordingPrefetcher) ShopProducts(context.Context) { r.record("shop") }
func (r *recordingPrefetcher) Product(_ context.Context, id string) { r.record("product:" + id) }
func (r *recordingPrefetcher) Cart(context.Context) { r.record("cart") }
func (r *recordingPrefetcher) CheckoutData(context.Context) { r.record("checkout") }
func (r *recordingPrefetcher) OnSaleProducts(context.Context) { r.record("offers") }
func (r *recordingPrefetcher) AdminData(_ context.Context, routeName string) {
	r.record("admin:" + routeName)
}

func newTestGuard(session *guardSession) (*Guard, *recordingPrefetcher) {
	pre := &recordingPrefetcher{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGuard(session, pre, log), pre
}

func TestPublicRoutesAllowAnonymous(t *testing.T) {
	g, _ := newTestGuard(&guardSession{})
	for _, name := range []string{Home, Shop, Offers, Cart, Contact, EmailVerification} {
		d := g.Navigate(context.Background(), Request{Name: name})
		assert.True(t, d.Allowed, "route %s should be public", name)
	}
	g.Wait()
}

func TestProtectedRouteRedirectsAnonymousHome(t *testing.T) {
	g, _ := newTestGuard(&guardSession{})
	d := g.Navigate(context.Background(), Request{Name: Profile})
	assert.False(t, d.Allowed)
	assert.Equal(t, Home, d.RedirectTo)
}

func TestAdminRouteRejectsNonAdmin(t *testing.T) {
	session := &guardSession{authed: true, hasUser: true, user: auth.User{Role: "user"}}
	g, _ := newTestGuard(session)

	d := g.Navigate(context.Background(), Request{Name: AdminUsers})
	assert.False(t, d.Allowed)
	assert.Equal(t, Home, d.RedirectTo)
}

func TestAdminRouteAllowsAdmin(t *testing.T) {
	session := &guardSession{authed: true, hasUser: true, user: auth.User{Role: "admin"}}
	g, _ := newTestGuard(session)

	d := g.Navigate(context.Background(), Request{Name: AdminOrders})
	assert.True(t, d.Allowed)
	g.Wait()
}

func TestUnknownRouteRedirectsHome(t *testing.T) {
	g, _ := newTestGuard(&guardSession{})
	d := g.Navigate(context.Background(), Request{Name: "NoSuchRoute"})
	assert.Equal(t, Home, d.RedirectTo)
}

func TestPaymentReturnAdmitsGatewayToken(t *testing.T) {
	g, _ := newTestGuard(&guardSession{})
	q := url.Values{"token_ws": {"tbk-abc123"}}

	d := g.Navigate(context.Background(), Request{Name: PaymentReturn, Query: q})
	assert.True(t, d.Allowed)

	// Without the token the usual session requirement applies.
	d = g.Navigate(context.Background(), Request{Name: PaymentReturn})
	assert.False(t, d.Allowed)
}

func TestPaymentErrorAdmitsMessageQuery(t *testing.T) {
	g, _ := newTestGuard(&guardSession{})
	q := url.Values{"message": {"Payment was rejected"}}

	d := g.Navigate(context.Background(), Request{Name: PaymentError, Query: q})
	assert.True(t, d.Allowed)

	d = g.Navigate(context.Background(), Request{Name: PaymentError})
	assert.False(t, d.Allowed)
}

func TestCheckoutBlocksOnPrefetch(t *testing.T) {
	session := &guardSession{authed: true, hasUser: true}
	g, pre := newTestGuard(session)

	d := g.Navigate(context.Background(), Request{Name: Checkout})
	require.True(t, d.Allowed)
	// Critical routes run the prefetch synchronously; no Wait needed.
	assert.Equal(t, []string{"checkout"}, pre.recorded())
}

func TestShopPrefetchRunsInBackground(t *testing.T) {
	g, pre := newTestGuard(&guardSession{})

	d := g.Navigate(context.Background(), Request{Name: Shop})
	require.True(t, d.Allowed)
	g.Wait()
	assert.Equal(t, []string{"shop"}, pre.recorded())
}

func TestProductDetailPassesID(t *testing.T) {
	g, pre := newTestGuard(&guardSession{})

	g.Navigate(context.Background(), Request{Name: ProductDetail, Params: map[string]string{"id": "42"}})
	g.Wait()
	assert.Equal(t, []string{"product:42"}, pre.recorded())
}

func TestProductDetailWithoutIDSkipsPrefetch(t *testing.T) {
	g, pre := newTestGuard(&guardSession{})

	g.Navigate(context.Background(), Request{Name: ProductDetail})
	g.Wait()
	assert.Empty(t, pre.recorded())
}

func TestAdminPrefetchCarriesRouteName(t *testing.T) {
	session := &guardSession{authed: true, hasUser: true, user: auth.User{Role: "admin"}}
	g, pre := newTestGuard(session)

	g.Navigate(context.Background(), Request{Name: AdminDashboard})
	assert.Equal(t, []string{"admin:AdminDashboard"}, pre.recorded())
}

func TestGuardDecisionIgnoresPrefetchOutcome(t *testing.T) {
	// Prefetch for a protected route still runs, but the decision comes
	// from the session alone.
	g, pre := newTestGuard(&guardSession{})

	d := g.Navigate(context.Background(), Request{Name: Checkout})
	assert.True(t, d.Allowed, "checkout itself carries no auth flag")
	assert.Equal(t, []string{"checkout"}, pre.recorded())
}

func TestRouteTableMetadata(t *testing.T) {
	r, ok := Lookup(AdminCreateProduct)
	require.True(t, ok)
	assert.Equal(t, "/admin/products/new", r.Path)
	assert.True(t, r.RequiresAuth)
	assert.True(t, r.RequiresAdmin)

	r, ok = Lookup(Cart)
	require.True(t, ok)
	assert.False(t, r.RequiresAuth)
}
