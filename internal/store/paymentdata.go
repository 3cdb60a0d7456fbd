package store

import (
	"encoding/json"
	"sync"
)

// PaymentData is the transient payload carried across the hosted-gateway
// redirect: which order is being paid and where to send the shopper after.
type PaymentData struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// PaymentDataStore is session-scoped: it lives as long as the process and is
// cleared once the payment flow resolves.
type PaymentDataStore struct {
	mu   sync.Mutex
	data []byte
}

func NewPaymentDataStore() *PaymentDataStore { return &PaymentDataStore{} }

func (s *PaymentDataStore) Save(d PaymentData) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = b
	return nil
}

// Load returns the stored payload, or ok=false when none is stored or the
// stored bytes do not parse.
func (s *PaymentDataStore) Load() (PaymentData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == 0 {
		return PaymentData{}, false
	}
	var d PaymentData
	if err := json.Unmarshal(s.data, &d); err != nil {
		return PaymentData{}, false
	}
	return d, true
}

func (s *PaymentDataStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
}
