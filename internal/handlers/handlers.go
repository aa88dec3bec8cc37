// Package handlers is the HTTP boundary of the gateway. Handlers decode
// requests, call the services and map the service error taxonomy onto HTTP
// status codes. Error bodies use the {"detail": ...} shape throughout.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sabtech/whatsgate-backend/internal/models"
	"github.com/sabtech/whatsgate-backend/internal/services"
)

// Set bundles the route handlers for registration.
type Set struct {
	Auth      *AuthHandler
	Instances *InstanceHandler
	Messages  *MessageHandler
	Webhooks  *WebhookHandler
	Media     *MediaHandler
	Events    *EventsHandler
	System    *SystemHandler
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError maps the service error taxonomy onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrNotRequested),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrExpired):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrUnauthorized):
		writeDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// extractBearerToken pulls the token from an "Authorization: Bearer x" header.
func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser resolves the calling user from the Authorization header.
// Writes the 401 response itself and returns nil when unauthenticated.
func currentUser(w http.ResponseWriter, r *http.Request, auth *services.AuthService) *models.User {
	header := r.Header.Get("Authorization")
	if header == "" {
		writeDetail(w, http.StatusUnauthorized, "Missing Authorization header")
		return nil
	}
	token := extractBearerToken(header)
	if token == "" {
		writeDetail(w, http.StatusUnauthorized, "Invalid Authorization header")
		return nil
	}
	user, err := auth.UserFromToken(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return nil
	}
	return user
}
