package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/sabtech/whatsgate-backend/internal/config"
	"github.com/sabtech/whatsgate-backend/internal/database"
	"github.com/sabtech/whatsgate-backend/internal/handlers"
	"github.com/sabtech/whatsgate-backend/internal/middleware"
	"github.com/sabtech/whatsgate-backend/internal/routes"
	"github.com/sabtech/whatsgate-backend/internal/services"
	"github.com/sabtech/whatsgate-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB (the identity store)
	log.Printf("Connecting to MongoDB...")
	mongoClient, db, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo(mongoClient)

	// Connect to Redis (rate limiting + live event stream)
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Store + indexes
	mongoStore := store.NewMongo(db)
	if err := mongoStore.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Services
	eventBus := services.NewRedisEventBus(redisClient)
	notifier := services.NewWebhookNotifier(mongoStore, eventBus)

	otpService := services.NewOTPService(mongoStore)
	authService := services.NewAuthService(mongoStore)
	instanceService := services.NewInstanceService(mongoStore)
	messageService := services.NewMessageService(mongoStore, mongoStore, notifier)
	webhookService := services.NewWebhookService(mongoStore, mongoStore)

	// Media uploads are optional: without Cloudinary credentials the endpoint
	// reports 503 and everything else keeps working.
	var mediaService *services.MediaService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		mediaService, err = services.NewMediaService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Media uploads will not be available")
		} else {
			log.Println("✅ Cloudinary media service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Media uploads will not be available")
	}

	h := &handlers.Set{
		Auth:      handlers.NewAuthHandler(otpService),
		Instances: handlers.NewInstanceHandler(instanceService, authService),
		Messages:  handlers.NewMessageHandler(messageService),
		Webhooks:  handlers.NewWebhookHandler(webhookService),
		Media:     handlers.NewMediaHandler(mediaService, authService),
		Events:    handlers.NewEventsHandler(instanceService, redisClient),
		System:    handlers.NewSystemHandler(db, mongoStore.CollectionNames()),
	}

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → OTPRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + OTP rate limiting)")
	} else {
		r.Use(middleware.RateLimit(redisClient))
	}

	// Health check (no rate limit concerns; plain OK)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/otp/request")
	log.Println("  POST /api/auth/otp/verify")
	log.Println("  GET  /api/instances")
	log.Println("  POST /api/instances")
	log.Println("  POST /api/instances/{instanceID}/authenticate")
	log.Println("  POST /api/webhooks/register")
	log.Println("  POST /api/messages/send")
	log.Println("  GET  /api/messages/{messageID}/status")
	log.Println("  POST /api/media/upload")
	log.Println("  GET  /ws/events")

	log.Printf("🚀 WhatsGate backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
