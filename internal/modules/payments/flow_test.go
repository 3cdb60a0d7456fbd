package payments

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/orders"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/store"
)

func newTestFlow(t *testing.T, handler http.Handler) (*Flow, *store.PaymentDataStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient(store.NewMemCredentials(), 5*time.Second, log)
	data := store.NewPaymentDataStore()
	return NewFlow(NewService(client, api.NewRoutes(srv.URL)), data), data
}

func TestInitiateStoresFlowPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payments/initiate", func(c *gin.Context) {
		var in map[string]any
		require.NoError(t, c.ShouldBindJSON(&in))
		assert.Contains(t, in, "shippingAddress")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"orderId": "o-77",
				"amount":  15990,
				"token":   "tbk-1",
				"url":     "https://gateway.example.com/pay/tbk-1",
			},
		})
	})
	flow, _ := newTestFlow(t, r)

	d, err := flow.Initiate(context.Background(), orders.ShippingAddress{Street: "Main 1", City: "Santiago"})
	require.NoError(t, err)
	assert.Equal(t, "o-77", d.OrderID)
	assert.Equal(t, int64(15990), d.Amount)

	pending, ok := flow.Pending()
	require.True(t, ok)
	assert.Equal(t, d, pending)
}

func TestInitiateFailureStoresNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payments/initiate", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
	})
	flow, _ := newTestFlow(t, r)

	_, err := flow.Initiate(context.Background(), orders.ShippingAddress{})
	require.Error(t, err)
	_, ok := flow.Pending()
	assert.False(t, ok)
}

func TestConfirmClearsPayloadEvenOnFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payments/confirm", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown payment token"})
	})
	flow, data := newTestFlow(t, r)
	require.NoError(t, data.Save(store.PaymentData{OrderID: "o-1", Amount: 100}))

	_, err := flow.Confirm(context.Background(), "tbk-stale")
	require.Error(t, err)
	_, ok := flow.Pending()
	assert.False(t, ok, "the flow payload is single use")
}

func TestConfirmSendsGatewayToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got map[string]any
	r := gin.New()
	r.POST("/api/payments/confirm", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment confirmed"})
	})
	flow, _ := newTestFlow(t, r)

	env, err := flow.Confirm(context.Background(), "tbk-9")
	require.NoError(t, err)
	assert.Equal(t, "Payment confirmed", env.Message)
	assert.Equal(t, "tbk-9", got["token_ws"])
}

func TestAbandonDropsPayload(t *testing.T) {
	flow, data := newTestFlow(t, http.NotFoundHandler())
	require.NoError(t, data.Save(store.PaymentData{OrderID: "o-1"}))

	flow.Abandon()
	_, ok := flow.Pending()
	assert.False(t, ok)
}
