package service

import (
	"context"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/crypto"
	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
	"github.com/contactdesk/contactdesk-go/internal/validation"
)

// UserStore is the persistence surface the user and auth services need.
type UserStore interface {
	Create(ctx context.Context, attrs model.UserAttributes) (*model.User, error)
	FindOne(ctx context.Context, id int64, failIfNotFound bool) (*model.User, error)
	FindByEmail(ctx context.Context, email string, failIfNotFound bool) (*model.User, error)
	FindMany(ctx context.Context, q query.ListQuery) ([]model.User, int64, error)
	UpdateOne(ctx context.Context, id int64, attrs model.UserAttributes) (*model.User, error)
	RemoveOne(ctx context.Context, id int64, failIfNotFound bool) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// UserService orchestrates the user lifecycle. Plaintext passwords are
// hashed here and never handed to the repository.
type UserService struct {
	store  UserStore
	hasher *crypto.Hasher
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, hasher *crypto.Hasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// Create validates the payload, hashes the password and inserts a new
// user.
func (s *UserService) Create(ctx context.Context, params model.UserParams) (*model.User, error) {
	if err := validation.User(params, false); err != nil {
		return nil, err
	}

	taken, err := s.store.EmailTaken(ctx, *params.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewUniqueEmailError()
	}

	hash, err := s.hasher.Hash(*params.Password)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, model.UserAttributes{
		Email:             params.Email,
		EncryptedPassword: &hash,
		FirstName:         params.FirstName,
		LastName:          params.LastName,
	})
}

// List returns one page of users projected to {id, email}.
func (s *UserService) List(ctx context.Context, q query.ListQuery) (*model.UserList, error) {
	users, total, err := s.store.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]model.UserListItem, len(users))
	for i, u := range users {
		items[i] = model.UserListItem{ID: u.ID, Email: u.Email}
	}

	return &model.UserList{Total: total, Items: items}, nil
}

// Get returns the full user record. Password material stays out of the
// serialized form.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.store.FindOne(ctx, id, true)
}

// Update validates the payload and patches the defined fields,
// re-hashing only when a new password was supplied.
func (s *UserService) Update(ctx context.Context, id int64, params model.UserParams) (*model.User, error) {
	if err := validation.User(params, true); err != nil {
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

	attrs := model.UserAttributes{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	}
	if params.Password != nil {
		hash, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return nil, err
		}
		attrs.EncryptedPassword = &hash
	}

	return s.store.UpdateOne(ctx, id, attrs)
}

// Delete removes a user entirely; there is no soft-delete.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	_, err := s.store.RemoveOne(ctx, id, true)
	return err
}
