// Package cart keeps the local cart view responsive to shopper actions while
// staying eventually consistent with the backend. Mutations apply
// optimistically, then reconcile against the backend's authoritative
// response; failures roll the optimistic step back.
package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// User-facing messages. MsgVerificationRequired is fixed: every operation
// surfaces exactly this string for the verification-required error kind.
const (
	MsgVerificationRequired = "You must verify your account to use the cart. Check your email."

	msgLoginToView   = "You must log in to view your cart"
	msgLoginToAdd    = "You must log in to add products to the cart"
	msgLoginToModify = "You must log in to modify the cart"
	msgLoginToClear  = "You must log in to empty the cart"

	msgLoadFailed   = "Failed to load cart"
	msgAddFailed    = "Failed to add product to cart"
	msgRemoveFailed = "Failed to remove product from cart"
	msgUpdateFailed = "Failed to update quantity"
	msgClearFailed  = "Failed to empty cart"

	msgItemsRemoved = "An item no longer exists or is out of stock"

	msgAddedSuffix = " added to cart"
	msgRemoved     = "Product removed from cart"
	msgCleared     = "Cart emptied"
)

// Notifier is the slice of the notification queue the engine needs.
type Notifier interface {
	Success(message string) string
	Error(message string) string
	Warning(message string) string
}

// AuthState answers the only auth question the cart has.
type AuthState interface {
	IsAuthenticated() bool
}

// Engine is the cart state holder. Its mutex guards the local state only; it
// is never held across a network call, so another operation may interleave
// between an optimistic mutation and its response. Each mutation therefore
// takes a sequence number at dispatch and only reconciles or rolls back while
// it is still the newest one issued.
type Engine struct {
	api    API
	auth   AuthState
	notify Notifier
	log    *slog.Logger

	mu           sync.Mutex
	items        []Item
	isOpen       bool
	loading      bool
	initializing bool
	errMsg       string
	seq          uint64
}

func NewEngine(apiGroup API, auth AuthState, notifier Notifier, log *slog.Logger) *Engine {
	return &Engine{api: apiGroup, auth: auth, notify: notifier, log: log}
}

// Items returns a snapshot of the local collection in backend order.
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Total is the sum of subtotals, recomputed from the collection.
func (e *Engine) Total() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var total int64
	for _, it := range e.items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, it := range e.items {
		n += it.Quantity
	}
	return n
}

func (e *Engine) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isOpen
}

func (e *Engine) Open() { e.mu.Lock(); e.isOpen = true; e.mu.Unlock() }
func (e *Engine) Close() { e.mu.Lock(); e.isOpen = false; e.mu.Unlock() }
func (e *Engine) Toggle() {
	e.mu.Lock()
	e.isOpen = !e.isOpen
	e.mu.Unlock()
}

// Reset empties local state without touching the backend. Called on logout.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.items = nil
	e.errMsg = ""
	e.mu.Unlock()
}

// Load replaces the local collection with the backend's authoritative cart.
// A second call while one is in flight is a no-op.
func (e *Engine) Load(ctx context.Context) error {
	if !e.auth.IsAuthenticated() {
		e.mu.Lock()
		e.items = nil
		e.mu.Unlock()
		return nil
	}

	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return nil
	}
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()
	defer e.setLoading(false)

	env, err := e.api.Get(ctx)
	if err != nil {
		e.loadFailed(err)
		return err
	}

	items, removed, ok := normalizeCartData(env.Data)
	if !ok {
		// Alternate "summary" endpoint as fallback for unrecognized shapes.
		sumEnv, sumErr := e.api.Summary(ctx)
		if sumErr != nil {
			e.loadFailed(sumErr)
			return sumErr
		}
		items, removed, ok = normalizeCartData(sumEnv.Data)
		if !ok {
			items = nil
		}
	}

	// One warning for the whole batch, however many items the backend
	// silently dropped.
	if removed > 0 {
		e.notify.Warning(msgItemsRemoved)
	}

	e.mu.Lock()
	e.items = items
	e.mu.Unlock()
	return nil
}

func (e *Engine) loadFailed(err error) {
	e.log.Warn("cart_load_failed", slog.String("error", err.Error()))
	msg, kind := e.classify(err, msgLoginToView, msgLoadFailed)
	e.mu.Lock()
	e.errMsg = msg
	if kind != kindVerification {
		e.items = nil
	}
	e.mu.Unlock()
}

// AddItem optimistically adds quantity of product to the local view, then
// reconciles with the backend. On failure the optimistic step is discarded by
// a full resynchronization.
func (e *Engine) AddItem(ctx context.Context, p Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	if !e.auth.IsAuthenticated() {
		e.notify.Error(msgLoginToAdd)
		return nil
	}

	e.mu.Lock()
	if existing := e.find(p.ID); existing != nil {
		existing.Quantity += quantity
		existing.Subtotal = existing.UnitPrice * int64(existing.Quantity)
	} else {
		e.items = append(e.items, newOptimisticItem(p, quantity))
	}
	seq := e.nextSeqLocked()
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()

	env, err := e.api.Add(ctx, p.ID, quantity)
	if err != nil {
		e.setLoading(false)
		if e.isLatest(seq) {
			// Resync from the server rather than guessing at rollback:
			// the optimistic item may have merged into an existing line.
			if loadErr := e.Load(ctx); loadErr != nil {
				e.log.Warn("cart_resync_failed", slog.String("error", loadErr.Error()))
			}
		}
		msg, _ := e.classify(err, msgLoginToAdd, msgAddFailed)
		e.setError(msg)
		e.notify.Error(msg)
		return err
	}
	defer e.setLoading(false)

	// The backend's collection replaces ours only when non-empty; an empty
	// payload here would erase the optimistic item for no reason.
	if items, _, ok := normalizeCartData(env.Data); ok && len(items) > 0 && e.isLatest(seq) {
		e.mu.Lock()
		e.items = items
		e.mu.Unlock()
	}

	e.notify.Success(p.Name + msgAddedSuffix)
	return nil
}

// RemoveItem optimistically drops the matching line, retaining the prior
// collection for exact rollback.
func (e *Engine) RemoveItem(ctx context.Context, productID string) error {
	if !e.auth.IsAuthenticated() {
		e.notify.Error(msgLoginToModify)
		return nil
	}

	e.mu.Lock()
	previous := e.items
	filtered := make([]Item, 0, len(e.items))
	for _, it := range e.items {
		if it.ProductID != productID {
			filtered = append(filtered, it)
		}
	}
	e.items = filtered
	seq := e.nextSeqLocked()
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()
	defer e.setLoading(false)

	env, err := e.api.Remove(ctx, productID)
	if err != nil {
		if e.isLatest(seq) {
			// Exact restore of the retained snapshot, not a re-fetch.
			e.mu.Lock()
			e.items = previous
			e.mu.Unlock()
		}
		msg, _ := e.classify(err, msgLoginToModify, msgRemoveFailed)
		e.setError(msg)
		e.notify.Error(msg)
		return err
	}

	if items, _, ok := normalizeCartData(env.Data); ok && e.isLatest(seq) {
		e.mu.Lock()
		e.items = items
		e.mu.Unlock()
	}

	e.notify.Success(msgRemoved)
	return nil
}

// SetQuantity optimistically rewrites the line's quantity and subtotal. A
// quantity at or below zero is a removal.
func (e *Engine) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if !e.auth.IsAuthenticated() {
		e.notify.Error(msgLoginToModify)
		return nil
	}
	if quantity <= 0 {
		return e.RemoveItem(ctx, productID)
	}

	e.mu.Lock()
	var prevQuantity int
	var prevSubtotal int64
	mutated := false
	if it := e.find(productID); it != nil {
		prevQuantity, prevSubtotal = it.Quantity, it.Subtotal
		it.Quantity = quantity
		it.Subtotal = it.UnitPrice * int64(quantity)
		mutated = true
	}
	seq := e.nextSeqLocked()
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()
	defer e.setLoading(false)

	env, err := e.api.Update(ctx, productID, quantity)
	if err != nil {
		if mutated && e.isLatest(seq) {
			e.mu.Lock()
			if it := e.find(productID); it != nil {
				it.Quantity = prevQuantity
				it.Subtotal = prevSubtotal
			}
			e.mu.Unlock()
		}
		msg, _ := e.classify(err, msgLoginToModify, msgUpdateFailed)
		e.setError(msg)
		e.notify.Error(msg)
		return err
	}

	if items, _, ok := normalizeCartData(env.Data); ok && len(items) > 0 && e.isLatest(seq) {
		e.mu.Lock()
		e.items = items
		e.mu.Unlock()
	}
	return nil
}

// Clear empties the cart. Without a session it only empties local state.
func (e *Engine) Clear(ctx context.Context) error {
	if !e.auth.IsAuthenticated() {
		e.mu.Lock()
		e.items = nil
		e.mu.Unlock()
		return nil
	}

	e.setLoading(true)
	defer e.setLoading(false)
	e.setError("")

	if _, err := e.api.Clear(ctx); err != nil {
		// Local items stay untouched on failure.
		msg, _ := e.classify(err, msgLoginToClear, msgClearFailed)
		e.setError(msg)
		e.notify.Error(msg)
		return err
	}

	e.mu.Lock()
	e.items = nil
	e.mu.Unlock()
	e.notify.Success(msgCleared)
	return nil
}

const (
	initializePollInterval = 100 * time.Millisecond
	initializePollBudget   = 5 * time.Second
)

// Initialize is the post-authentication entry point. A boolean latch prevents
// overlapping initializations; when a load is already in flight the caller
// waits for it instead of starting a second one, bounded to five seconds.
func (e *Engine) Initialize(ctx context.Context) {
	e.mu.Lock()
	if e.initializing {
		e.mu.Unlock()
		return
	}
	inFlight := e.loading
	e.mu.Unlock()

	if inFlight {
		deadline := time.Now().Add(initializePollBudget)
		for time.Now().Before(deadline) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(initializePollInterval):
			}
			if !e.IsLoading() {
				return
			}
		}
		if !e.IsLoading() {
			return
		}
	}

	e.mu.Lock()
	e.initializing = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.initializing = false
		e.mu.Unlock()
	}()

	if err := e.Load(ctx); err != nil {
		// Initialization failures never propagate; the cart loads on demand.
		e.log.Warn("cart_initialize_failed", slog.String("error", err.Error()))
	}
}

// find returns a pointer into e.items; callers hold e.mu.
func (e *Engine) find(productID string) *Item {
	for i := range e.items {
		if e.items[i].ProductID == productID {
			return &e.items[i]
		}
	}
	return nil
}

func (e *Engine) nextSeqLocked() uint64 {
	e.seq++
	return e.seq
}

func (e *Engine) isLatest(seq uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return seq == e.seq
}

func (e *Engine) setLoading(v bool) {
	e.mu.Lock()
	e.loading = v
	e.mu.Unlock()
}

func (e *Engine) setError(msg string) {
	e.mu.Lock()
	e.errMsg = msg
	e.mu.Unlock()
}
