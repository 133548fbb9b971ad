package model

import "time"

// Contact represents a contact row in the database.
type Contact struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName derives the display name from first and last name. It is
// computed on read and never stored.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ContactParams carries the writable contact fields of a create or
// update request. Nil means the field was absent from the payload, so
// updates only touch what the client actually sent.
type ContactParams struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// ContactListItem is the projection returned by the list endpoint.
type ContactListItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ContactList is the list endpoint response body. Total counts every
// record matching the filters, independent of pagination.
type ContactList struct {
	Total int64             `json:"total"`
	Items []ContactListItem `json:"items"`
}
