package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sabtech/whatsgate-backend/internal/services"
)

// OTPRequestBody identifies the user by email or phone (exactly one).
type OTPRequestBody struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// OTPVerifyBody carries the identifier plus the submitted code.
type OTPVerifyBody struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Code  string `json:"code"`
}

// AuthHandler serves the OTP login flow.
type AuthHandler struct {
	otp *services.OTPService
}

func NewAuthHandler(otp *services.OTPService) *AuthHandler {
	return &AuthHandler{otp: otp}
}

// RequestOTP issues a one-time code for the identifier. In a real deployment
// the code would be dispatched via email/SMS; the demo returns it directly.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var body OTPRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Email == "" && body.Phone == "" {
		writeDetail(w, http.StatusBadRequest, "Provide email or phone")
		return
	}

	code, expiresAt, err := h.otp.RequestOTP(r.Context(), body.Email, body.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "OTP generated",
		"code":       code,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// VerifyOTP exchanges a valid code for a bearer token.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body OTPVerifyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Email == "" && body.Phone == "" {
		writeDetail(w, http.StatusBadRequest, "Provide email or phone")
		return
	}

	token, err := h.otp.VerifyOTP(r.Context(), body.Email, body.Phone, body.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
