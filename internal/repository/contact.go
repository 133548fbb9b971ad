package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
)

const contactColumns = "id, first_name, last_name, email, created_at, updated_at"

// ContactRepository handles contact persistence operations.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact and returns the persisted record,
// generated id included. A duplicate email is reported as the same
// unique violation the pre-insert probe produces.
func (r *ContactRepository) Create(ctx context.Context, params model.ContactParams) (*model.Contact, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email) VALUES (?, ?, ?)`,
		orEmpty(params.FirstName), orEmpty(params.LastName), orEmpty(params.Email),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.NewUniqueEmailError()
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.FindOne(ctx, id, true)
}

// FindOne looks a contact up by primary key. When the id does not exist
// it returns a RecordNotFoundError, or (nil, nil) if failIfNotFound is
// false.
func (r *ContactRepository) FindOne(ctx context.Context, id int64, failIfNotFound bool) (*model.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if failIfNotFound {
				return nil, notFound("contacts", id)
			}
			return nil, nil
		}
		return nil, err
	}

	return contact, nil
}

// FindMany returns the page of contacts matching q plus the total count
// of matching records ignoring pagination.
func (r *ContactRepository) FindMany(ctx context.Context, q query.ListQuery) ([]model.Contact, int64, error) {
	where, args := whereClause(q.Where)

	listArgs := append(append([]any{}, args...), q.Limit, q.Offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts`+where+orderClause(q.OrderBy)+` LIMIT ? OFFSET ?`,
		listArgs...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM contacts`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// UpdateOne applies the defined fields of params to the contact and
// returns the updated record. Missing ids surface through the follow-up
// read as a RecordNotFoundError.
func (r *ContactRepository) UpdateOne(ctx context.Context, id int64, params model.ContactParams) (*model.Contact, error) {
	assignments, args := setClause([]column{
		{"first_name", params.FirstName},
		{"last_name", params.LastName},
		{"email", params.Email},
	})
	if assignments == "" {
		return r.FindOne(ctx, id, true)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET `+assignments+` WHERE id = ?`, append(args, id)...,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.NewUniqueEmailError()
		}
		return nil, err
	}

	return r.FindOne(ctx, id, true)
}

// RemoveOne deletes a contact. Deleting a missing id raises
// RecordNotFoundError, or returns false if failIfNotFound is false.
func (r *ContactRepository) RemoveOne(ctx context.Context, id int64, failIfNotFound bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		if failIfNotFound {
			return false, notFound("contacts", id)
		}
		return false, nil
	}

	return true, nil
}

// EmailTaken reports whether another contact already uses the email.
// excludeID is the record being updated, or 0 on create.
func (r *ContactRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM contacts WHERE email = ? AND id <> ?)`,
		email, excludeID,
	).Scan(&taken)
	return taken, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*model.Contact, error) {
	contact := &model.Contact{}
	err := row.Scan(
		&contact.ID, &contact.FirstName, &contact.LastName, &contact.Email,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
