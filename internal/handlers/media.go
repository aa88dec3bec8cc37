package handlers

import (
	"net/http"

	"github.com/sabtech/whatsgate-backend/internal/services"
)

// MediaHandler uploads media files and returns URLs usable as the media_url
// of image/document/audio/video messages. Uploads are bearer-gated.
type MediaHandler struct {
	media *services.MediaService // nil when Cloudinary credentials are absent
	auth  *services.AuthService
}

func NewMediaHandler(media *services.MediaService, auth *services.AuthService) *MediaHandler {
	return &MediaHandler{media: media, auth: auth}
}

// Upload accepts a multipart file and stores it in Cloudinary.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.auth)
	if user == nil {
		return
	}

	if h.media == nil {
		writeDetail(w, http.StatusServiceUnavailable, "Media upload service not available")
		return
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "No file provided: "+err.Error())
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "whatsgate"
	}

	url, err := h.media.UploadFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to upload file: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "File uploaded",
		"media_url": url,
	})
}
