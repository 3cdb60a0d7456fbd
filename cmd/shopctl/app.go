package main

import (
	"context"
	"fmt"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/config"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/admin"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/auth"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/cart"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/contact"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/orders"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/payments"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/modules/products"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/notify"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/store"
)

// app wires configuration, the transport, and the state holders together for
// one CLI invocation.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	queue    *notify.Queue
	creds    *store.FileCredentials
	routes   *api.Routes
	session  *auth.Session
	cart     *cart.Engine
	products *products.Service
	orders   *orders.Service
	payment  *payments.Flow
	admin    *admin.Service
	contact  *contact.Service
}

func newApp(verbose bool) (*app, error) {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	queue := notify.NewQueue(cfg.NotificationTTL)
	creds := store.NewFileCredentials(cfg.CredentialsFile)
	client := api.NewClient(creds, cfg.HTTPTimeout, logger)
	routes := api.NewRoutes(cfg.APIBaseURL)

	a := &app{
		cfg:      cfg,
		log:      logger,
		queue:    queue,
		creds:    creds,
		routes:   routes,
		products: products.NewService(client, routes),
		orders:   orders.NewService(client, routes),
		payment:  payments.NewFlow(payments.NewService(client, routes), store.NewPaymentDataStore()),
		admin:    admin.NewService(client, routes),
		contact:  contact.NewService(client, routes),
	}

	cartSvc := cart.NewService(client, routes)
	authSvc := auth.NewService(client, routes)

	// The session drives the cart: a fresh login initializes it, logout
	// resets it. The hook indirection keeps the two packages apart.
	var engine *cart.Engine
	session := auth.NewSession(authSvc, creds, auth.Hooks{
		OnAuthenticated: func(ctx context.Context) { engine.Initialize(ctx) },
		OnLogout:        func() { engine.Reset() },
	}, logger)
	engine = cart.NewEngine(cartSvc, session, queue, logger)

	a.session = session
	a.cart = engine
	return a, nil
}

// flushNotifications prints and drains everything the state holders queued
// during the command.
func (a *app) flushNotifications() {
	for _, n := range a.queue.Notifications() {
		fmt.Printf("[%s] %s\n", n.Kind, n.Message)
	}
	a.queue.ClearAll()
}
