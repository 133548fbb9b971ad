package handler

import (
	"context"
	"net/http"

	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
)

// ContactAPI is the contact service surface consumed by the handler.
type ContactAPI interface {
	Create(ctx context.Context, params model.ContactParams) (*model.Contact, error)
	List(ctx context.Context, q query.ListQuery) (*model.ContactList, error)
	Get(ctx context.Context, id int64) (*model.Contact, error)
	Update(ctx context.Context, id int64, params model.ContactParams) (*model.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// ContactHandler handles HTTP requests for the contact resource.
type ContactHandler struct {
	service ContactAPI
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc ContactAPI) *ContactHandler {
	return &ContactHandler{service: svc}
}

// HandleCreate handles POST /contacts requests.
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var params model.ContactParams
	if !decodeBody(w, r, &params) {
		return
	}

	contact, err := h.service.Create(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// HandleList handles GET /contacts requests with limit, offset, sort_by
// and field[operator] filter parameters.
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), query.ParseList(r.URL.Query()))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /contacts/{id} requests.
func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contacts")
	if err != nil {
		respondError(w, err)
		return
	}

	contact, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// HandleUpdate handles PUT /contacts/{id} requests.
func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contacts")
	if err != nil {
		respondError(w, err)
		return
	}

	var params model.ContactParams
	if !decodeBody(w, r, &params) {
		return
	}

	contact, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// HandleDelete handles DELETE /contacts/{id} requests.
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contacts")
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
