package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sabtech/whatsgate-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Set) {
	// Root banner + diagnostics
	r.Get("/", h.System.Root)
	r.Get("/api/test", h.System.TestDatabase)
	r.Get("/api/schema", h.System.Schema)

	// OTP auth routes
	r.Post("/api/auth/otp/request", h.Auth.RequestOTP)
	r.Post("/api/auth/otp/verify", h.Auth.VerifyOTP)

	// Instance routes (bearer-gated)
	r.Get("/api/instances", h.Instances.List)
	r.Post("/api/instances", h.Instances.Create)
	r.Post("/api/instances/{instanceID}/authenticate", h.Instances.Authenticate)

	// Webhook routes (instance-token-gated)
	r.Post("/api/webhooks/register", h.Webhooks.Register)

	// Message routes
	r.Post("/api/messages/send", h.Messages.Send)
	r.Get("/api/messages/{messageID}/status", h.Messages.Status)

	// Media upload (bearer-gated, returns media_url for media messages)
	r.Post("/api/media/upload", h.Media.Upload)

	// WebSocket live event stream (instance-token-gated)
	r.Get("/ws/events", h.Events.Stream)
}
