package mockbackend

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Catalog.

func (s *Server) sortedProducts() []*product {
	out := make([]*product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	category := c.Query("category")
	search := c.Query("search")

	s.mu.Lock()
	defer s.mu.Unlock()
	var filtered []*product
	for _, p := range s.sortedProducts() {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !containsFold(p.Name, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	ok(c, gin.H{
		"products": filtered[start:end],
		"pagination": gin.H{
			"page": page, "limit": limit, "total": total, "pages": pages,
		},
	}, "")
}

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	if len(n) == 0 {
		return true
	}
	lower := func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + 32
		}
		return r
	}
outer:
	for i := 0; i+len(n) <= len(h); i++ {
		for j := range n {
			if lower(h[i+j]) != lower(n[j]) {
				continue outer
			}
		}
		return true
	}
	return false
}

func (s *Server) featuredProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*product
	for _, p := range s.sortedProducts() {
		if p.Featured {
			out = append(out, p)
		}
	}
	ok(c, out, "")
}

func (s *Server) offerProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*product
	for _, p := range s.sortedProducts() {
		if p.IsOnSale {
			out = append(out, p)
		}
	}
	ok(c, out, "")
}

func (s *Server) categories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range s.sortedProducts() {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	ok(c, out, "")
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[c.Param("id")]
	if p == nil {
		fail(c, http.StatusNotFound, "Product not found", "")
		return
	}
	ok(c, gin.H{"product": p}, "")
}

func (s *Server) allProductsAdmin(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok(c, s.sortedProducts(), "")
}

func (s *Server) createProduct(c *gin.Context, _ *user) {
	var p product
	if err := c.ShouldBindJSON(&p); err != nil || p.Name == "" {
		fail(c, http.StatusBadRequest, "Invalid product data", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.newID()
	if p.OriginalPrice == 0 {
		p.OriginalPrice = p.Price
	}
	s.products[p.ID] = &p
	ok(c, gin.H{"product": &p}, "Product created")
}

func (s *Server) updateProduct(c *gin.Context, _ *user) {
	var in product
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid product data", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[c.Param("id")]
	if p == nil {
		fail(c, http.StatusNotFound, "Product not found", "")
		return
	}
	in.ID = p.ID
	if in.OriginalPrice == 0 {
		in.OriginalPrice = in.Price
	}
	*p = in
	ok(c, gin.H{"product": p}, "Product updated")
}

func (s *Server) deleteProduct(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.products[c.Param("id")] == nil {
		fail(c, http.StatusNotFound, "Product not found", "")
		return
	}
	delete(s.products, c.Param("id"))
	ok(c, nil, "Product deleted")
}

func (s *Server) updateStock(c *gin.Context, _ *user) {
	var in struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Stock is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[c.Param("id")]
	if p == nil {
		fail(c, http.StatusNotFound, "Product not found", "")
		return
	}
	p.Stock = *in.Stock
	ok(c, gin.H{"product": p}, "Stock updated")
}

// Cart. Unverified accounts are refused with the verification code; lines
// whose product disappeared or ran out of stock are dropped at read time and
// reported through removedProducts.

func (s *Server) requireVerified(c *gin.Context, u *user) bool {
	if !u.Verified {
		fail(c, http.StatusForbidden, "Account verification required", codeVerificationRequired)
		return false
	}
	return true
}

func (s *Server) cartItems(userID string) ([]gin.H, int) {
	var items []gin.H
	removed := 0
	kept := s.carts[userID][:0]
	for _, line := range s.carts[userID] {
		p := s.products[line.ProductID]
		if p == nil || p.Stock <= 0 {
			removed++
			continue
		}
		kept = append(kept, line)
		items = append(items, gin.H{
			"productId":   p.ID,
			"productName": p.Name,
			"price":       p.Price,
			"image":       p.Image,
			"stock":       p.Stock,
			"quantity":    line.Quantity,
			"category":    p.Category,
			"subtotal":    p.Price * int64(line.Quantity),
			"isOnSale":    p.IsOnSale,
		})
	}
	s.carts[userID] = kept
	return items, removed
}

func (s *Server) cartPayload(userID string) gin.H {
	items, removed := s.cartItems(userID)
	if items == nil {
		items = []gin.H{}
	}
	out := gin.H{"items": items}
	if removed > 0 {
		out["removedProducts"] = gin.H{"count": removed}
	}
	return out
}

func (s *Server) getCart(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ok(c, s.cartPayload(u.ID), "")
}

func (s *Server) cartSummary(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _ := s.cartItems(u.ID)
	var total int64
	count := 0
	for _, it := range items {
		total += it["subtotal"].(int64)
		count += it["quantity"].(int)
	}
	if items == nil {
		items = []gin.H{}
	}
	ok(c, gin.H{"items": items, "total": total, "itemCount": count}, "")
}

func (s *Server) addToCart(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	var in struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "productId is required", "")
		return
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[in.ProductID]
	if p == nil {
		fail(c, http.StatusNotFound, "Product not found", "")
		return
	}
	if p.Stock < in.Quantity {
		fail(c, http.StatusConflict, "Not enough stock", "")
		return
	}

	lines := s.carts[u.ID]
	merged := false
	for i := range lines {
		if lines[i].ProductID == in.ProductID {
			lines[i].Quantity += in.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, cartLine{ProductID: in.ProductID, Quantity: in.Quantity})
	}
	s.carts[u.ID] = lines
	ok(c, s.cartPayload(u.ID), "Added to cart")
}

func (s *Server) updateCart(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	var in struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "productId and quantity are required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[u.ID]
	for i := range lines {
		if lines[i].ProductID == in.ProductID {
			if in.Quantity <= 0 {
				s.carts[u.ID] = append(lines[:i], lines[i+1:]...)
			} else {
				lines[i].Quantity = in.Quantity
			}
			ok(c, s.cartPayload(u.ID), "Cart updated")
			return
		}
	}
	fail(c, http.StatusNotFound, "Item not in cart", "")
}

func (s *Server) removeFromCart(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	productID := c.Param("productId")

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[u.ID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[u.ID] = append(lines[:i], lines[i+1:]...)
			ok(c, s.cartPayload(u.ID), "Removed from cart")
			return
		}
	}
	fail(c, http.StatusNotFound, "Item not in cart", "")
}

func (s *Server) clearCart(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, u.ID)
	ok(c, gin.H{"items": []gin.H{}}, "Cart cleared")
}

// Orders.

func (s *Server) createOrder(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	var in struct {
		Shipping map[string]any `json:"shippingAddress"`
	}
	_ = c.ShouldBindJSON(&in)

	s.mu.Lock()
	defer s.mu.Unlock()
	items, _ := s.cartItems(u.ID)
	if len(items) == 0 {
		fail(c, http.StatusBadRequest, "Cart is empty", "")
		return
	}

	o := &order{
		ID:            s.newID(),
		UserID:        u.ID,
		Status:        "pending",
		PaymentStatus: "unpaid",
		Shipping:      in.Shipping,
		CreatedAt:     time.Now(),
	}
	for _, it := range items {
		qty := it["quantity"].(int)
		price := it["price"].(int64)
		o.Items = append(o.Items, orderItem{
			ProductID: it["productId"].(string),
			Name:      it["productName"].(string),
			Price:     price,
			Quantity:  qty,
		})
		o.Total += price * int64(qty)
		if p := s.products[it["productId"].(string)]; p != nil {
			p.Stock -= qty
		}
	}
	s.orders[o.ID] = o
	delete(s.carts, u.ID)
	ok(c, gin.H{"order": o}, "Order created")
}

func (s *Server) myOrders(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*order
	for _, o := range s.orders {
		if o.UserID == u.ID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	ok(c, gin.H{"orders": out}, "")
}

func (s *Server) getOrder(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[c.Param("id")]
	if o == nil || (o.UserID != u.ID && u.Role != "admin") {
		fail(c, http.StatusNotFound, "Order not found", "")
		return
	}
	ok(c, gin.H{"order": o}, "")
}

func (s *Server) cancelOrder(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[c.Param("id")]
	if o == nil || o.UserID != u.ID {
		fail(c, http.StatusNotFound, "Order not found", "")
		return
	}
	if o.Status != "pending" {
		fail(c, http.StatusConflict, "Only pending orders can be cancelled", "")
		return
	}
	o.Status = "cancelled"
	ok(c, gin.H{"order": o}, "Order cancelled")
}

func (s *Server) allOrders(c *gin.Context, _ *user) {
	status := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*order
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	ok(c, gin.H{"orders": out}, "")
}

func (s *Server) orderStats(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var revenue int64
	byStatus := map[string]int{}
	for _, o := range s.orders {
		byStatus[o.Status]++
		if o.PaymentStatus == "paid" {
			revenue += o.Total
		}
	}
	ok(c, gin.H{
		"total":    len(s.orders),
		"byStatus": byStatus,
		"revenue":  revenue,
	}, "")
}

func (s *Server) updateOrderStatus(c *gin.Context, _ *user) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "status is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[c.Param("id")]
	if o == nil {
		fail(c, http.StatusNotFound, "Order not found", "")
		return
	}
	o.Status = in.Status
	ok(c, gin.H{"order": o}, "Status updated")
}

// Payments. The hosted-gateway handshake is reduced to a token round trip.

func (s *Server) initiatePayment(c *gin.Context, u *user) {
	if !s.requireVerified(c, u) {
		return
	}
	var in struct {
		Shipping map[string]any `json:"shippingAddress"`
	}
	_ = c.ShouldBindJSON(&in)

	s.mu.Lock()
	defer s.mu.Unlock()
	items, _ := s.cartItems(u.ID)
	if len(items) == 0 {
		fail(c, http.StatusBadRequest, "Cart is empty", "")
		return
	}

	o := &order{
		ID:            s.newID(),
		UserID:        u.ID,
		Status:        "pending",
		PaymentStatus: "initiated",
		Shipping:      in.Shipping,
		CreatedAt:     time.Now(),
	}
	for _, it := range items {
		qty := it["quantity"].(int)
		price := it["price"].(int64)
		o.Items = append(o.Items, orderItem{
			ProductID: it["productId"].(string),
			Name:      it["productName"].(string),
			Price:     price,
			Quantity:  qty,
		})
		o.Total += price * int64(qty)
	}
	s.orders[o.ID] = o

	token := "tbk-" + uuid.NewString()
	s.payments[token] = o.ID
	ok(c, gin.H{
		"orderId": o.ID,
		"amount":  o.Total,
		"token":   token,
		"url":     "https://gateway.example.com/pay/" + token,
	}, "")
}

func (s *Server) confirmPayment(c *gin.Context, u *user) {
	var in struct {
		TokenWS string `json:"token_ws" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "token_ws is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	orderID, found := s.payments[in.TokenWS]
	if !found {
		fail(c, http.StatusBadRequest, "Unknown payment token", "")
		return
	}
	delete(s.payments, in.TokenWS)

	o := s.orders[orderID]
	o.PaymentStatus = "paid"
	o.Status = "confirmed"
	for _, it := range o.Items {
		if p := s.products[it.ProductID]; p != nil {
			p.Stock -= it.Quantity
		}
	}
	delete(s.carts, u.ID)
	ok(c, gin.H{"order": o}, "Payment confirmed")
}

func (s *Server) paymentStatus(c *gin.Context, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[c.Param("orderId")]
	if o == nil || (o.UserID != u.ID && u.Role != "admin") {
		fail(c, http.StatusNotFound, "Order not found", "")
		return
	}
	ok(c, gin.H{"orderId": o.ID, "paymentStatus": o.PaymentStatus}, "")
}

func (s *Server) refundPayment(c *gin.Context, _ *user) {
	var in struct {
		Amount int64 `json:"amount"`
	}
	_ = c.ShouldBindJSON(&in)

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[c.Param("orderId")]
	if o == nil {
		fail(c, http.StatusNotFound, "Order not found", "")
		return
	}
	if o.PaymentStatus != "paid" {
		fail(c, http.StatusConflict, "Order is not paid", "")
		return
	}
	amount := in.Amount
	if amount == 0 || amount > o.Total {
		amount = o.Total
	}
	if amount == o.Total {
		o.PaymentStatus = "refunded"
		o.Status = "cancelled"
	} else {
		o.PaymentStatus = "partially_refunded"
	}
	ok(c, gin.H{"orderId": o.ID, "refunded": amount}, "Refund processed")
}

// Contact.

func (s *Server) submitContact(c *gin.Context) {
	var in struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "name, email and message are required", "")
		return
	}

	s.mu.Lock()
	s.messages = append(s.messages, map[string]string{
		"name": in.Name, "email": in.Email, "subject": in.Subject, "message": in.Message,
	})
	s.mu.Unlock()
	ok(c, nil, "Message received")
}
