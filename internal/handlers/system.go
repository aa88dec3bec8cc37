package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SystemHandler serves the root banner and the database diagnostic and schema
// introspection helpers.
type SystemHandler struct {
	db          *mongo.Database
	collections []string
}

func NewSystemHandler(db *mongo.Database, collections []string) *SystemHandler {
	return &SystemHandler{db: db, collections: collections}
}

// Root is a liveness banner.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "WhatsApp API demo backend is running",
	})
}

// TestDatabase reports connectivity to the backing database.
func (h *SystemHandler) TestDatabase(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if h.db == nil {
		writeJSON(w, http.StatusOK, response)
		return
	}

	response["database"] = "✅ Available"
	if os.Getenv("MONGODB_URI") != "" || os.Getenv("MONGO_URI") != "" {
		response["database_url"] = "✅ Set"
	} else {
		response["database_url"] = "❌ Not Set"
	}
	response["database_name"] = h.db.Name()
	response["connection_status"] = "Connected"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	names, err := h.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		response["database"] = "⚠️ Connected but Error: " + truncate(err.Error(), 80)
	} else {
		if len(names) > 10 {
			names = names[:10]
		}
		response["collections"] = names
		response["database"] = "✅ Connected & Working"
	}

	writeJSON(w, http.StatusOK, response)
}

// Schema lists the collections this core persists to.
func (h *SystemHandler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections": h.collections,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
