package service

import (
	"context"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/crypto"
	"github.com/contactdesk/contactdesk-go/internal/model"
)

// AuthService authenticates users and issues tokens.
type AuthService struct {
	store  UserStore
	tokens *crypto.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, tokens *crypto.TokenManager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Login verifies the credentials and returns a signed token plus the
// authenticated user. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	invalid := &apperror.UnauthorizedError{Reason: "invalid email or password"}

	user, err := s.store.FindByEmail(ctx, req.Email, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid
	}

	match, err := crypto.VerifyPassword(req.Password, user.EncryptedPassword)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, invalid
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Profile returns the authenticated user's record.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return s.store.FindOne(ctx, userID, true)
}
