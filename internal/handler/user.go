package handler

import (
	"context"
	"net/http"

	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
)

// UserAPI is the user service surface consumed by the handler.
type UserAPI interface {
	Create(ctx context.Context, params model.UserParams) (*model.User, error)
	List(ctx context.Context, q query.ListQuery) (*model.UserList, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, params model.UserParams) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserHandler handles HTTP requests for the user resource. Password
// material never appears in any response body.
type UserHandler struct {
	service UserAPI
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc UserAPI) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleCreate handles POST /users requests.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var params model.UserParams
	if !decodeBody(w, r, &params) {
		return
	}

	user, err := h.service.Create(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleList handles GET /users requests.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), query.ParseList(r.URL.Query()))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /users/{id} requests.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "users")
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdate handles PUT /users/{id} requests.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "users")
	if err != nil {
		respondError(w, err)
		return
	}

	var params model.UserParams
	if !decodeBody(w, r, &params) {
		return
	}

	user, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleDelete handles DELETE /users/{id} requests.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "users")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
