package service

import (
	"context"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
	"github.com/contactdesk/contactdesk-go/internal/validation"
)

// ContactStore is the persistence surface the contact service needs.
type ContactStore interface {
	Create(ctx context.Context, params model.ContactParams) (*model.Contact, error)
	FindOne(ctx context.Context, id int64, failIfNotFound bool) (*model.Contact, error)
	FindMany(ctx context.Context, q query.ListQuery) ([]model.Contact, int64, error)
	UpdateOne(ctx context.Context, id int64, params model.ContactParams) (*model.Contact, error)
	RemoveOne(ctx context.Context, id int64, failIfNotFound bool) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// ContactService orchestrates the contact lifecycle: schema validation,
// the email uniqueness probe, then persistence. Typed errors propagate
// untouched to the HTTP boundary.
type ContactService struct {
	store ContactStore
}

// NewContactService creates a new ContactService.
func NewContactService(store ContactStore) *ContactService {
	return &ContactService{store: store}
}

// Create validates the payload and inserts a new contact.
func (s *ContactService) Create(ctx context.Context, params model.ContactParams) (*model.Contact, error) {
	if err := validation.Contact(params, false); err != nil {
		return nil, err
	}

	if params.Email != nil {
		taken, err := s.store.EmailTaken(ctx, *params.Email, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewUniqueEmailError()
		}
	}

	return s.store.Create(ctx, params)
}

// List returns one page of contacts projected to {id, name, email},
// plus the total count of records matching the filters.
func (s *ContactService) List(ctx context.Context, q query.ListQuery) (*model.ContactList, error) {
	contacts, total, err := s.store.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]model.ContactListItem, len(contacts))
	for i, c := range contacts {
		items[i] = model.ContactListItem{
			ID:    c.ID,
			Name:  c.FullName(),
			Email: c.Email,
		}
	}

	return &model.ContactList{Total: total, Items: items}, nil
}

// Get returns the full contact record.
func (s *ContactService) Get(ctx context.Context, id int64) (*model.Contact, error) {
	return s.store.FindOne(ctx, id, true)
}

// Update validates the payload and patches the defined fields. The
// uniqueness probe only runs when the email actually changes, which
// costs one read to resolve the current record.
func (s *ContactService) Update(ctx context.Context, id int64, params model.ContactParams) (*model.Contact, error) {
	if err := validation.Contact(params, true); err != nil {
		return nil, err
	}

	if params.Email != nil {
		current, err := s.store.FindOne(ctx, id, true)
		if err != nil {
			return nil, err
		}
		if current.Email != *params.Email {
			taken, err := s.store.EmailTaken(ctx, *params.Email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.NewUniqueEmailError()
			}
		}
	}

	return s.store.UpdateOne(ctx, id, params)
}

// Delete removes a contact. Deleting a missing id is an error, not a
// no-op.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	_, err := s.store.RemoveOne(ctx, id, true)
	return err
}
