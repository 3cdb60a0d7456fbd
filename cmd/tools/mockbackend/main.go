// mockbackend serves an in-memory storefront backend for local development.
// Point API_BASE_URL at it and the client works without the real backend.
package main

import (
	"flag"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/mockbackend"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	secret := os.Getenv("MOCK_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		logger.Warn("MOCK_JWT_SECRET not set, using the development default")
	}

	srv := mockbackend.NewServer(secret, logger)
	logger.Info("mock backend listening", slog.String("addr", *addr))
	if err := srv.Router().Run(*addr); err != nil {
		log.Fatalf("mock backend: %v", err)
	}
}
