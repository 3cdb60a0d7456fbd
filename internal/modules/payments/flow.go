package payments

import (
	"context"
	"encoding/json"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/orders"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/store"
)

// initiateResult is what the backend answers when it has set up the gateway
// transaction.
type initiateResult struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Token       string `json:"token"`
	RedirectURL string `json:"url"`
}

// Flow ties the payment call group to the session-scoped payment payload,
// which survives the round trip through the hosted gateway's redirect.
type Flow struct {
	svc  *Service
	data *store.PaymentDataStore
}

func NewFlow(svc *Service, data *store.PaymentDataStore) *Flow {
	return &Flow{svc: svc, data: data}
}

// Initiate starts the payment and stores the flow payload for the return leg.
func (f *Flow) Initiate(ctx context.Context, addr orders.ShippingAddress) (store.PaymentData, error) {
	env, err := f.svc.Initiate(ctx, addr)
	if err != nil {
		return store.PaymentData{}, err
	}
	var res initiateResult
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &res); err != nil {
			return store.PaymentData{}, err
		}
	}
	d := store.PaymentData{
		OrderID:     res.OrderID,
		Amount:      res.Amount,
		Token:       res.Token,
		RedirectURL: res.RedirectURL,
	}
	if err := f.data.Save(d); err != nil {
		return store.PaymentData{}, err
	}
	return d, nil
}

// Confirm completes the flow with the gateway's return token and clears the
// stored payload whatever the outcome; it is single-use.
func (f *Flow) Confirm(ctx context.Context, tokenWS string) (*api.Envelope, error) {
	defer f.data.Clear()
	return f.svc.Confirm(ctx, tokenWS)
}

// Pending returns the stored flow payload, if a payment is mid-flight.
func (f *Flow) Pending() (store.PaymentData, bool) {
	return f.data.Load()
}

func (f *Flow) Abandon() {
	f.data.Clear()
}
