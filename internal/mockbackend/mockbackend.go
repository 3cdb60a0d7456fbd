// Package mockbackend is an in-memory stand-in for the storefront backend,
// used in development and integration tests. It speaks the same response
// envelope as production: {success, data, error, message, code} plus
// top-level token/type/user on auth responses.
package mockbackend

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const codeVerificationRequired = "VERIFICATION_REQUIRED"

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     string
	Verified bool
	Deleted  bool
	// VerifyToken is handed out at registration and consumed by the
	// verification endpoint.
	VerifyToken string
	ResetToken  string
}

type product struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Price              int64  `json:"price"`
	Image              string `json:"image"`
	Stock              int    `json:"stock"`
	Category           string `json:"category"`
	Rating             int    `json:"rating"`
	Description        string `json:"description"`
	Featured           bool   `json:"featured"`
	IsOnSale           bool   `json:"isOnSale"`
	DiscountPercentage int    `json:"discountPercentage"`
	OriginalPrice      int64  `json:"originalPrice"`
}

type cartLine struct {
	ProductID string
	Quantity  int
}

type order struct {
	ID            string         `json:"id"`
	UserID        string         `json:"-"`
	Items         []orderItem    `json:"items"`
	Total         int64          `json:"total"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Shipping      map[string]any `json:"shippingAddress,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type orderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Server holds all mock state behind one mutex. Handlers are short and never
// block, so a single lock is fine.
type Server struct {
	mu       sync.Mutex
	secret   []byte
	log      *slog.Logger
	users    map[string]*user // by email
	products map[string]*product
	carts    map[string][]cartLine // by user id
	orders   map[string]*order
	payments map[string]string // token_ws -> order id
	messages []map[string]string
	nextID   int
}

func NewServer(secret string, log *slog.Logger) *Server {
	s := &Server{
		secret:   []byte(secret),
		log:      log,
		users:    make(map[string]*user),
		products: make(map[string]*product),
		carts:    make(map[string][]cartLine),
		orders:   make(map[string]*order),
		payments: make(map[string]string),
		nextID:   1000,
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	admin := &user{
		ID: s.newID(), Name: "Admin", Email: "admin@example.com",
		Password: "admin123", Role: "admin", Verified: true,
	}
	s.users[admin.Email] = admin

	for _, p := range []product{
		{Name: "Walnut Desk", Price: 18990, Stock: 12, Category: "Furniture", Rating: 5, Featured: true},
		{Name: "Brass Lamp", Price: 4590, Stock: 40, Category: "Lighting", Rating: 4},
		{Name: "Wool Throw", Price: 6990, Stock: 0, Category: "Textiles", Rating: 4, IsOnSale: true, DiscountPercentage: 20, OriginalPrice: 8740},
		{Name: "Ceramic Vase", Price: 2990, Stock: 25, Category: "Decor", Rating: 5, IsOnSale: true, DiscountPercentage: 10, OriginalPrice: 3320},
	} {
		p := p
		p.ID = s.newID()
		if p.OriginalPrice == 0 {
			p.OriginalPrice = p.Price
		}
		s.products[p.ID] = &p
	}
}

func (s *Server) newID() string {
	s.nextID++
	return uuid.NewString()[:8] + "-" + itoa(s.nextID)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [12]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

// Router builds the gin engine with the full mock route table mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(s.log), recovery(s.log))

	r.POST("/users/register", s.register)
	r.POST("/users/login", s.login)
	r.GET("/users/verify/:token", s.verifyEmail)
	r.POST("/api/users/resend-verification", s.resendVerification)
	r.POST("/users/reset-password-request", s.requestPasswordReset)
	r.POST("/users/reset-password/:token", s.resetPassword)
	r.GET("/users/profile/:identifier", s.profile)
	r.PUT("/users/profile", s.auth(s.updateProfile))

	r.GET("/users/all", s.admin(s.allUsers))
	r.GET("/api/users/stats", s.admin(s.userStats))
	r.PUT("/users/:id", s.admin(s.updateUser))
	r.DELETE("/users/:id", s.admin(s.deleteUser))
	r.PATCH("/users/:id/restore", s.admin(s.restoreUser))

	r.GET("/api/products", s.listProducts)
	r.GET("/api/products/featured", s.featuredProducts)
	r.GET("/api/products/offers", s.offerProducts)
	r.GET("/api/products/categories", s.categories)
	r.GET("/api/products/admin/all", s.admin(s.allProductsAdmin))
	r.GET("/api/products/:id", s.getProduct)
	r.POST("/api/products", s.admin(s.createProduct))
	r.PUT("/api/products/:id", s.admin(s.updateProduct))
	r.DELETE("/api/products/:id", s.admin(s.deleteProduct))
	r.PATCH("/api/products/:id/stock", s.admin(s.updateStock))

	r.GET("/api/cart", s.auth(s.getCart))
	r.GET("/api/cart/summary", s.auth(s.cartSummary))
	r.POST("/api/cart/add", s.auth(s.addToCart))
	r.PUT("/api/cart/update", s.auth(s.updateCart))
	r.DELETE("/api/cart/remove/:productId", s.auth(s.removeFromCart))
	r.DELETE("/api/cart/clear", s.auth(s.clearCart))

	r.POST("/api/orders", s.auth(s.createOrder))
	r.GET("/api/orders/my-orders", s.auth(s.myOrders))
	r.GET("/api/orders/admin/all", s.admin(s.allOrders))
	r.GET("/api/orders/admin/stats", s.admin(s.orderStats))
	r.PATCH("/api/orders/admin/:id/status", s.admin(s.updateOrderStatus))
	r.GET("/api/orders/:id", s.auth(s.getOrder))
	r.PATCH("/api/orders/:id/cancel", s.auth(s.cancelOrder))

	r.POST("/api/payments/initiate", s.auth(s.initiatePayment))
	r.POST("/api/payments/confirm", s.auth(s.confirmPayment))
	r.GET("/api/payments/status/:orderId", s.auth(s.paymentStatus))
	r.POST("/api/payments/refund/:orderId", s.admin(s.refundPayment))

	r.POST("/api/contact", s.submitContact)

	return r
}

// Envelope helpers.

func ok(c *gin.Context, data any, message string) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message, code string) {
	body := gin.H{"success": false, "message": message}
	if code != "" {
		body["code"] = code
	}
	c.AbortWithStatusJSON(status, body)
}

// Auth.

func (s *Server) issueToken(u *user) (string, error) {
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) userFromToken(c *gin.Context) *user {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil
	}
	tok, err := jwt.Parse(strings.TrimPrefix(h, "Bearer "), func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	email, _ := claims["email"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[email]
	if u == nil || u.Deleted {
		return nil
	}
	return u
}

func (s *Server) auth(h func(*gin.Context, *user)) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := s.userFromToken(c)
		if u == nil {
			fail(c, http.StatusUnauthorized, "Authentication required", "")
			return
		}
		h(c, u)
	}
}

func (s *Server) admin(h func(*gin.Context, *user)) gin.HandlerFunc {
	return s.auth(func(c *gin.Context, u *user) {
		if u.Role != "admin" {
			fail(c, http.StatusForbidden, "Admin access required", "")
			return
		}
		h(c, u)
	})
}
