package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/eventlane/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

// AuthHandler resolves external identities to user accounts.
type AuthHandler struct {
	userService *services.UserService
	logger      *slog.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, logger *slog.Logger) {
	handler := NewAuthHandler(userService, logger)

	r.Post("/login", handler.Login)
}

type LoginRequest struct {
	FirebaseUID string `json:"firebaseUid"`
	Email       string `json:"email"`
}

type LoginResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Login registers the user on first sight and returns the stored identity.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing firebaseUid or email")
		return
	}

	req.FirebaseUID = strings.TrimSpace(req.FirebaseUID)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirebaseUID == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Missing firebaseUid or email")
		return
	}

	user, err := h.userService.LoginOrRegister(r.Context(), req.FirebaseUID, req.Email)
	if err != nil {
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{ID: user.ID, Username: user.Username})
}
