package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/starlingkids/leads-api/internal/infra/database"
	"github.com/starlingkids/leads-api/internal/infra/http/handlers"
	"github.com/starlingkids/leads-api/internal/infra/http/middleware"
	"github.com/starlingkids/leads-api/internal/infra/integration/meta"
	"github.com/starlingkids/leads-api/internal/infra/integration/studiocrm"
	"github.com/starlingkids/leads-api/internal/infra/mail"
	"github.com/starlingkids/leads-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis is optional; without it the public endpoint runs unthrottled.
	var rdb *redis.Client
	var limiter *handlers.RateLimiter
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		limiter = handlers.NewRateLimiter(rdb, 10, time.Minute)
	} else {
		log.Println("⚠️ REDIS_ADDR not set, rate limiting disabled")
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways and adapters
	crmClient := studiocrm.NewClient()
	metaClient := meta.NewClient()
	mailSender := mail.NewEmailSender(
		envOr("MAIL_HOST", "smtp.gmail.com"),
		envIntOr("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "applications@starlingkids.co.uk"),
		os.Getenv("LEAD_NOTIFY_TO"),
	)

	// 3. UseCases
	deliverUC := usecase.NewDeliverLeadUseCase(leadRepo, crmClient, mailSender, metaClient)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(deliverUC, leadRepo, limiter)
	healthHandler := handlers.NewHealthHandler(db, rdb)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{envOr("SITE_ORIGIN", "http://localhost:3000"), "*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/leads", leadHandler.HandleDeliver)
	r.Get("/api/leads", leadHandler.HandleList)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Leads API running on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
