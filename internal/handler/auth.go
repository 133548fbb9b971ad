package handler

import (
	"context"
	"net/http"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/middleware"
	"github.com/contactdesk/contactdesk-go/internal/model"
)

// AuthAPI is the auth service surface consumed by the handler.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service AuthAPI
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc AuthAPI) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles POST /auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, &apperror.UnauthorizedError{})
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
