package mockbackend

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewServer("test-secret", log)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return s, srv
}

func call(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out))
	return res.StatusCode, out
}

func adminToken(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	status, body := call(t, http.MethodPost, srv.URL+"/users/login", "", map[string]string{
		"email": "admin@example.com", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, status)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func verifiedUserToken(t *testing.T, s *Server, srv *httptest.Server, email string) string {
	t.Helper()
	status, _ := call(t, http.MethodPost, srv.URL+"/users/register", "", map[string]string{
		"name": "Shopper", "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)

	s.mu.Lock()
	verify := s.users[email].VerifyToken
	s.mu.Unlock()
	require.NotEmpty(t, verify)

	status, body := call(t, http.MethodGet, srv.URL+"/users/verify/"+verify, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "VERIFIED", body["type"])
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func firstProductID(t *testing.T, srv *httptest.Server, category string) string {
	t.Helper()
	status, body := call(t, http.MethodGet, srv.URL+"/api/products?category="+category, "", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	list := data["products"].([]any)
	require.NotEmpty(t, list)
	return list[0].(map[string]any)["id"].(string)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	_, srv := newTestServer(t)
	status, body := call(t, http.MethodPost, srv.URL+"/users/login", "", map[string]string{
		"email": "admin@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
}

func TestCartRequiresAuth(t *testing.T) {
	_, srv := newTestServer(t)
	status, _ := call(t, http.MethodGet, srv.URL+"/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCartRefusesUnverifiedAccount(t *testing.T) {
	s, srv := newTestServer(t)
	_, _ = call(t, http.MethodPost, srv.URL+"/users/register", "", map[string]string{
		"name": "New", "email": "new@example.com", "password": "secret1",
	})
	s.mu.Lock()
	u := s.users["new@example.com"]
	s.mu.Unlock()
	tok, err := s.issueToken(u)
	require.NoError(t, err)

	status, body := call(t, http.MethodGet, srv.URL+"/api/cart", tok, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, codeVerificationRequired, body["code"])
}

func TestCartAddAndReadBack(t *testing.T) {
	s, srv := newTestServer(t)
	tok := verifiedUserToken(t, s, srv, "shopper@example.com")
	pid := firstProductID(t, srv, "Lighting")

	status, body := call(t, http.MethodPost, srv.URL+"/api/cart/add", tok, map[string]any{
		"productId": pid, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, pid, item["productId"])
	assert.Equal(t, float64(2), item["quantity"])
	assert.Equal(t, item["price"].(float64)*2, item["subtotal"])
}

func TestCartDropsOutOfStockLines(t *testing.T) {
	s, srv := newTestServer(t)
	tok := verifiedUserToken(t, s, srv, "shopper@example.com")
	pid := firstProductID(t, srv, "Lighting")

	_, _ = call(t, http.MethodPost, srv.URL+"/api/cart/add", tok, map[string]any{"productId": pid})

	s.mu.Lock()
	s.products[pid].Stock = 0
	s.mu.Unlock()

	status, body := call(t, http.MethodGet, srv.URL+"/api/cart", tok, nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Empty(t, data["items"])
	removed := data["removedProducts"].(map[string]any)
	assert.Equal(t, float64(1), removed["count"])
}

func TestOrderFlowConsumesCart(t *testing.T) {
	s, srv := newTestServer(t)
	tok := verifiedUserToken(t, s, srv, "shopper@example.com")
	pid := firstProductID(t, srv, "Decor")

	_, _ = call(t, http.MethodPost, srv.URL+"/api/cart/add", tok, map[string]any{"productId": pid, "quantity": 3})

	status, body := call(t, http.MethodPost, srv.URL+"/api/orders", tok, map[string]any{
		"shippingAddress": map[string]any{"street": "Main 1", "city": "Santiago"},
	})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	o := data["order"].(map[string]any)
	assert.Equal(t, "pending", o["status"])

	status, body = call(t, http.MethodGet, srv.URL+"/api/cart", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"].(map[string]any)["items"])
}

func TestPaymentHandshake(t *testing.T) {
	s, srv := newTestServer(t)
	tok := verifiedUserToken(t, s, srv, "shopper@example.com")
	pid := firstProductID(t, srv, "Furniture")

	_, _ = call(t, http.MethodPost, srv.URL+"/api/cart/add", tok, map[string]any{"productId": pid})

	status, body := call(t, http.MethodPost, srv.URL+"/api/payments/initiate", tok, map[string]any{})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	tokenWS := data["token"].(string)
	orderID := data["orderId"].(string)
	require.NotEmpty(t, tokenWS)

	status, body = call(t, http.MethodPost, srv.URL+"/api/payments/confirm", tok, map[string]any{"token_ws": tokenWS})
	require.Equal(t, http.StatusOK, status)
	o := body["data"].(map[string]any)["order"].(map[string]any)
	assert.Equal(t, "paid", o["paymentStatus"])

	// A token is single use.
	status, _ = call(t, http.MethodPost, srv.URL+"/api/payments/confirm", tok, map[string]any{"token_ws": tokenWS})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, http.MethodGet, srv.URL+"/api/payments/status/"+orderID, tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "paid", body["data"].(map[string]any)["paymentStatus"])
}

func TestAdminEndpointsRejectShoppers(t *testing.T) {
	s, srv := newTestServer(t)
	tok := verifiedUserToken(t, s, srv, "shopper@example.com")

	status, _ := call(t, http.MethodGet, srv.URL+"/users/all", tok, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminUserLifecycle(t *testing.T) {
	s, srv := newTestServer(t)
	_ = verifiedUserToken(t, s, srv, "shopper@example.com")
	admin := adminToken(t, srv)

	s.mu.Lock()
	uid := s.users["shopper@example.com"].ID
	s.mu.Unlock()

	status, _ := call(t, http.MethodDelete, srv.URL+"/users/"+uid, admin, nil)
	require.Equal(t, http.StatusOK, status)

	// Deleted accounts cannot log in.
	status, _ = call(t, http.MethodPost, srv.URL+"/users/login", "", map[string]string{
		"email": "shopper@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, http.MethodPatch, srv.URL+"/users/"+uid+"/restore", admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, http.MethodPost, srv.URL+"/users/login", "", map[string]string{
		"email": "shopper@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestRequestIDEchoedBack(t *testing.T) {
	_, srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/products", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "rid-123", res.Header.Get("X-Request-ID"))
}
