package api

import "fmt"

// Routes maps logical endpoint names to fully-qualified backend URLs. The
// base URL comes from configuration; paths mirror the backend's route table.
type Routes struct {
	base string
}

func NewRoutes(baseURL string) *Routes {
	return &Routes{base: baseURL}
}

func (r *Routes) BaseURL() string { return r.base }

func (r *Routes) join(path string) string { return r.base + path }

// Users

func (r *Routes) Register() string { return r.join("/users/register") }
func (r *Routes) Login() string { return r.join("/users/login") }
func (r *Routes) VerifyEmail(token string) string {
	return r.join("/users/verify/" + token)
}
func (r *Routes) ResendVerification() string { return r.join("/api/users/resend-verification") }
func (r *Routes) ResetPasswordRequest() string { return r.join("/users/reset-password-request") }
func (r *Routes) ResetPassword(token string) string {
	return r.join("/users/reset-password/" + token)
}
func (r *Routes) UserProfile(identifier string) string {
	return r.join("/users/profile/" + identifier)
}
func (r *Routes) UpdateProfile() string { return r.join("/users/profile") }

// Users (admin)

func (r *Routes) AllUsers() string { return r.join("/users/all") }
func (r *Routes) UserStats() string { return r.join("/api/users/stats") }
func (r *Routes) User(id string) string {
	return r.join("/users/" + id)
}
func (r *Routes) RestoreUser(id string) string {
	return r.join("/users/" + id + "/restore")
}

// Products

func (r *Routes) Products() string { return r.join("/api/products") }
func (r *Routes) Product(id string) string {
	return r.join("/api/products/" + id)
}
func (r *Routes) ProductStock(id string) string {
	return r.join("/api/products/" + id + "/stock")
}
func (r *Routes) ProductCategories() string { return r.join("/api/products/categories") }
func (r *Routes) FeaturedProducts() string { return r.join("/api/products/featured") }
func (r *Routes) OfferProducts() string { return r.join("/api/products/offers") }
func (r *Routes) AllProductsAdmin() string { return r.join("/api/products/admin/all") }

// Orders

func (r *Routes) Orders() string { return r.join("/api/orders") }
func (r *Routes) MyOrders() string { return r.join("/api/orders/my-orders") }
func (r *Routes) Order(id string) string {
	return r.join("/api/orders/" + id)
}
func (r *Routes) CancelOrder(id string) string {
	return r.join("/api/orders/" + id + "/cancel")
}
func (r *Routes) AllOrdersAdmin() string { return r.join("/api/orders/admin/all") }
func (r *Routes) OrderStatsAdmin() string { return r.join("/api/orders/admin/stats") }
func (r *Routes) OrderStatusAdmin(id string) string {
	return r.join("/api/orders/admin/" + id + "/status")
}

// Cart

func (r *Routes) Cart() string { return r.join("/api/cart") }
func (r *Routes) CartSummary() string { return r.join("/api/cart/summary") }
func (r *Routes) CartAdd() string { return r.join("/api/cart/add") }
func (r *Routes) CartUpdate() string { return r.join("/api/cart/update") }
func (r *Routes) CartRemove(productID string) string {
	return r.join("/api/cart/remove/" + productID)
}
func (r *Routes) CartClear() string { return r.join("/api/cart/clear") }

// Payments

func (r *Routes) InitiatePayment() string { return r.join("/api/payments/initiate") }
func (r *Routes) ConfirmPayment() string { return r.join("/api/payments/confirm") }
func (r *Routes) PaymentStatus(orderID string) string {
	return r.join(fmt.Sprintf("/api/payments/status/%s", orderID))
}
func (r *Routes) RefundPayment(orderID string) string {
	return r.join(fmt.Sprintf("/api/payments/refund/%s", orderID))
}

// Contact

func (r *Routes) Contact() string { return r.join("/api/contact") }
