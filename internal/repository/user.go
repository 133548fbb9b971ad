package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/model"
	"github.com/contactdesk/contactdesk-go/internal/query"
)

const userColumns = "id, email, encrypted_password, first_name, last_name, facebook_id, google_id, created_at, updated_at"

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns the persisted record. The
// attributes must already carry the encrypted password; plaintext never
// reaches this layer.
func (r *UserRepository) Create(ctx context.Context, attrs model.UserAttributes) (*model.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, encrypted_password, first_name, last_name) VALUES (?, ?, ?, ?)`,
		orEmpty(attrs.Email), orEmpty(attrs.EncryptedPassword),
		orEmpty(attrs.FirstName), orEmpty(attrs.LastName),
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

// FindOne looks a user up by primary key, with the same not-found
// contract as the contact repository.
func (r *UserRepository) FindOne(ctx context.Context, id int64, failIfNotFound bool) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if failIfNotFound {
				return nil, notFound("users", id)
			}
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// FindByEmail looks a user up by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string, failIfNotFound bool) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if failIfNotFound {
				return nil, &apperror.RecordNotFoundError{Collection: "users", ID: email}
			}
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// FindMany returns the page of users matching q plus the total count of
// matching records ignoring pagination.
func (r *UserRepository) FindMany(ctx context.Context, q query.ListQuery) ([]model.User, int64, error) {
	where, args := whereClause(q.Where)

	listArgs := append(append([]any{}, args...), q.Limit, q.Offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where+orderClause(q.OrderBy)+` LIMIT ? OFFSET ?`,
		listArgs...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM users`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateOne applies the defined attributes to the user and returns the
// updated record.
func (r *UserRepository) UpdateOne(ctx context.Context, id int64, attrs model.UserAttributes) (*model.User, error) {
	assignments, args := setClause([]column{
		{"email", attrs.Email},
		{"encrypted_password", attrs.EncryptedPassword},
		{"first_name", attrs.FirstName},
		{"last_name", attrs.LastName},
	})
	if assignments == "" {
		return r.FindOne(ctx, id, true)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+assignments+` WHERE id = ?`, append(args, id)...,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.NewUniqueEmailError()
		}
		return nil, err
	}

	return r.FindOne(ctx, id, true)
}

// RemoveOne deletes a user, with the same not-found contract as the
// contact repository.
func (r *UserRepository) RemoveOne(ctx context.Context, id int64, failIfNotFound bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		if failIfNotFound {
			return false, notFound("users", id)
		}
		return false, nil
	}

	return true, nil
}

// EmailTaken reports whether another user already uses the email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id <> ?)`,
		email, excludeID,
	).Scan(&taken)
	return taken, err
}

func scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	var facebookID, googleID sql.NullString
	err := row.Scan(
		&user.ID, &user.Email, &user.EncryptedPassword,
		&user.FirstName, &user.LastName,
		&facebookID, &googleID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if facebookID.Valid {
		user.FacebookID = &facebookID.String
	}
	if googleID.Valid {
		user.GoogleID = &googleID.String
	}
	return user, nil
}
