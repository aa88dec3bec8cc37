package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sabtech/whatsgate-backend/internal/services"
)

// InstanceCreateBody names the new instance.
type InstanceCreateBody struct {
	Name string `json:"name"`
}

// InstanceHandler serves the instance registry. All routes are bearer-gated.
type InstanceHandler struct {
	instances *services.InstanceService
	auth      *services.AuthService
}

func NewInstanceHandler(instances *services.InstanceService, auth *services.AuthService) *InstanceHandler {
	return &InstanceHandler{instances: instances, auth: auth}
}

// List returns all instances owned by the caller.
func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.auth)
	if user == nil {
		return
	}

	items, err := h.instances.List(r.Context(), user.ID.Hex())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Create registers a new instance. The secret token in the response is shown
// only this once.
func (h *InstanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.auth)
	if user == nil {
		return
	}

	var body InstanceCreateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.instances.Create(r.Context(), user.ID.Hex(), body.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Authenticate marks the instance as paired (the simulated QR scan).
func (h *InstanceHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.auth)
	if user == nil {
		return
	}

	instanceID := chi.URLParam(r, "instanceID")
	if err := h.instances.Authenticate(r.Context(), user.ID.Hex(), instanceID); err != nil {
		if err == services.ErrNotFound {
			writeDetail(w, http.StatusNotFound, "Instance not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"instance_id":      instanceID,
		"is_authenticated": true,
	})
}
