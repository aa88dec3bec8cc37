package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sabtech/whatsgate-backend/internal/models"
	"github.com/sabtech/whatsgate-backend/internal/services"
)

// SendMessageBody is the outbound-send request. Exactly one of text/media_url/
// interactive should be set, matching the declared type.
type SendMessageBody struct {
	InstanceID  string `json:"instance_id"`
	Token       string `json:"token"`
	To          string `json:"to"`
	Type        string `json:"type,omitempty"`
	Text        string `json:"text,omitempty"`
	MediaURL    string `json:"media_url,omitempty"`
	Interactive bson.M `json:"interactive,omitempty"`
}

// MessageHandler serves message send and status polling.
type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send accepts an outbound message. The response status is final for this
// core: "sent" when the instance is authenticated, "failed" otherwise.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var body SendMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.messages.Send(r.Context(), services.SendInput{
		InstanceID: body.InstanceID,
		Token:      body.Token,
		To:         body.To,
		Type:       body.Type,
		Content: models.MessageContent{
			Text:        body.Text,
			MediaURL:    body.MediaURL,
			Interactive: body.Interactive,
		},
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message_id": result.MessageID,
		"status":     result.Status,
		"error":      nullableString(result.Error),
	})
}

// Status returns the status recorded when the message was sent.
func (h *MessageHandler) Status(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "messageID")

	result, err := h.messages.Status(r.Context(), messageID)
	if err != nil {
		if err == services.ErrNotFound {
			writeDetail(w, http.StatusNotFound, "Message not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message_id": result.MessageID,
		"status":     result.Status,
		"error":      nullableString(result.Error),
	})
}

// nullableString renders "" as JSON null so clients can check error == null.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
