package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
)

// stubContactAPI returns canned results and records the last call made.
type stubContactAPI struct {
	contact *model.Contact
	list    *model.ContactList
	err     error

	lastQuery  query.ListQuery
	lastID     int64
	lastParams model.ContactParams
}

func (s *stubContactAPI) Create(_ context.Context, params model.ContactParams) (*model.Contact, error) {
	s.lastParams = params
	return s.contact, s.err
}

func (s *stubContactAPI) List(_ context.Context, q query.ListQuery) (*model.ContactList, error) {
	s.lastQuery = q
	return s.list, s.err
}

func (s *stubContactAPI) Get(_ context.Context, id int64) (*model.Contact, error) {
	s.lastID = id
	return s.contact, s.err
}

func (s *stubContactAPI) Update(_ context.Context, id int64, params model.ContactParams) (*model.Contact, error) {
	s.lastID = id
	s.lastParams = params
	return s.contact, s.err
}

func (s *stubContactAPI) Delete(_ context.Context, id int64) error {
	s.lastID = id
	return s.err
}

func contactRouter(api ContactAPI) http.Handler {
	h := NewContactHandler(api)
	r := chi.NewRouter()
	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContactHandleCreate(t *testing.T) {
	stub := &stubContactAPI{contact: &model.Contact{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@x.com"}}
	rec := doRequest(t, contactRouter(stub), http.MethodPost, "/contacts",
		`{"first_name":"John","last_name":"Doe","email":"john@x.com"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "John", *stub.lastParams.FirstName)

	var body model.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(1), body.ID)
}

func TestContactHandleCreate_InvalidJSON(t *testing.T) {
	rec := doRequest(t, contactRouter(&stubContactAPI{}), http.MethodPost, "/contacts", `{"first_name":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"errorMessage":"invalid request body"}`, rec.Body.String())
}

func TestContactHandleCreate_ValidationError(t *testing.T) {
	stub := &stubContactAPI{err: &apperror.ValidationError{Violations: []apperror.FieldError{
		{Message: "email is required", Path: []string{"email"}, Type: "required"},
	}}}
	rec := doRequest(t, contactRouter(stub), http.MethodPost, "/contacts", `{"first_name":"John"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		ErrorMessage  string                           `json:"errorMessage"`
		ErrorsByField map[string][]apperror.FieldError `json:"errorsByField"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "email is required", body.ErrorMessage)
	require.Equal(t, "required", body.ErrorsByField["email"][0].Type)
}

func TestContactHandleList(t *testing.T) {
	stub := &stubContactAPI{list: &model.ContactList{
		Total: 2,
		Items: []model.ContactListItem{
			{ID: 1, Name: "John Doe", Email: "john@x.com"},
			{ID: 2, Name: "Jane Doe", Email: "jane@x.com"},
		},
	}}
	rec := doRequest(t, contactRouter(stub), http.MethodGet,
		"/contacts?limit=5&sort_by=first_name.asc&first_name[contains]=J", "")

	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, 5, stub.lastQuery.Limit)
	require.Equal(t, []query.SortKey{{Field: "first_name"}}, stub.lastQuery.OrderBy)
	require.Equal(t, []query.Filter{{Field: "first_name", Op: query.OpContains, Value: "J"}}, stub.lastQuery.Where)

	var body model.ContactList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(2), body.Total)
	require.Len(t, body.Items, 2)
}

func TestContactHandleGet_NonNumericID(t *testing.T) {
	rec := doRequest(t, contactRouter(&stubContactAPI{}), http.MethodGet, "/contacts/abc", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"errorMessage":"record with id abc not found in contacts"}`, rec.Body.String())
}

func TestContactHandleGet_Missing(t *testing.T) {
	stub := &stubContactAPI{err: &apperror.RecordNotFoundError{Collection: "contacts", ID: "42"}}
	rec := doRequest(t, contactRouter(stub), http.MethodGet, "/contacts/42", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, int64(42), stub.lastID)
}

func TestContactHandleUpdate(t *testing.T) {
	stub := &stubContactAPI{contact: &model.Contact{ID: 7, FirstName: "Jane"}}
	rec := doRequest(t, contactRouter(stub), http.MethodPut, "/contacts/7", `{"first_name":"Jane"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), stub.lastID)
	require.Equal(t, "Jane", *stub.lastParams.FirstName)
	require.Nil(t, stub.lastParams.LastName)
}

func TestContactHandleDelete(t *testing.T) {
	stub := &stubContactAPI{}
	rec := doRequest(t, contactRouter(stub), http.MethodDelete, "/contacts/7", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, int64(7), stub.lastID)
}

func TestContactHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	stub := &stubContactAPI{err: context.DeadlineExceeded}
	rec := doRequest(t, contactRouter(stub), http.MethodGet, "/contacts/1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"errorMessage":"internal server error"}`, rec.Body.String())
}
