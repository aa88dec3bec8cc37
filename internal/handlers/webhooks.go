package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sabtech/whatsgate-backend/internal/services"
)

// RegisterWebhookBody registers a callback URL for an instance.
type RegisterWebhookBody struct {
	InstanceID string   `json:"instance_id"`
	Token      string   `json:"token"`
	URL        string   `json:"url"`
	Events     []string `json:"events,omitempty"`
}

// WebhookHandler serves webhook registration.
type WebhookHandler struct {
	webhooks *services.WebhookService
}

func NewWebhookHandler(webhooks *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// Register persists a webhook subscription; the instance secret token proves
// possession.
func (h *WebhookHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body RegisterWebhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hook, err := h.webhooks.Register(r.Context(), body.InstanceID, body.Token, body.URL, body.Events)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      hook.ID.Hex(),
		"message": "Webhook registered",
	})
}
