package model

import "time"

// User represents a user row in the database. The encrypted password is
// persisted but never serialized; the plaintext password only exists in
// request payloads.
type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	EncryptedPassword string    `json:"-"`
	FacebookID        *string   `json:"facebook_id,omitempty"`
	GoogleID          *string   `json:"google_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserParams carries the writable user fields of a create or update
// request. Nil means absent, as with ContactParams. Password and its
// confirmation are write-only and dropped before persistence.
type UserParams struct {
	Email                *string `json:"email"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
	FirstName            *string `json:"first_name"`
	LastName             *string `json:"last_name"`
}

// UserAttributes is the persistable subset handed to the repository
// after validation and password hashing. Nil fields are left untouched
// on update.
type UserAttributes struct {
	Email             *string
	EncryptedPassword *string
	FirstName         *string
	LastName          *string
}

// UserListItem is the projection returned by the user list endpoint.
type UserListItem struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserList is the user list endpoint response body.
type UserList struct {
	Total int64          `json:"total"`
	Items []UserListItem `json:"items"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful authentication: a signed token
// plus the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
