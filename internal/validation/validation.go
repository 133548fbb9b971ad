// Package validation checks request payloads against the contact and
// user schemas. All violations are collected before returning, so a
// single error reports everything wrong with a payload at once.
// Cross-record checks (email uniqueness) live in the service layer,
// which has repository access.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/contactdesk/contactdesk-go/internal/apperror"
	"github.com/contactdesk/contactdesk-go/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Every tag starts with omitempty so nil pointers are skipped, which is
// exactly the partial-update semantics: absent fields are not
// validated. Required-ness on create is enforced manually in Contact
// and User, never by tag.
type contactRules struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=30"`
	LastName  *string `json:"last_name" validate:"omitempty,max=30"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type userRules struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=30"`
	FirstName *string `json:"first_name" validate:"omitempty,max=30"`
	LastName  *string `json:"last_name" validate:"omitempty,max=30"`
}

// Contact validates contact attributes. Email is required on create and
// optional on update; when present it must be a valid address.
func Contact(params model.ContactParams, forUpdate bool) error {
	var violations []apperror.FieldError
	if !forUpdate && params.Email == nil {
		violations = append(violations, requiredViolation("email"))
	}
	violations = append(violations, check(contactRules{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
	})...)
	return asError(violations)
}

// User validates user attributes. On create, email and password are
// required. Whenever a password is supplied its confirmation must be
// present and equal.
func User(params model.UserParams, forUpdate bool) error {
	var violations []apperror.FieldError
	if !forUpdate {
		if params.Email == nil {
			violations = append(violations, requiredViolation("email"))
		}
		if params.Password == nil {
			violations = append(violations, requiredViolation("password"))
		}
	}
	violations = append(violations, check(userRules{
		Email:     params.Email,
		Password:  params.Password,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})...)
	if params.Password != nil {
		switch {
		case params.PasswordConfirmation == nil:
			violations = append(violations, requiredViolation("password_confirmation"))
		case *params.PasswordConfirmation != *params.Password:
			violations = append(violations, apperror.FieldError{
				Message: "password_confirmation does not match",
				Path:    []string{"password_confirmation"},
				Type:    "only",
			})
		}
	}
	return asError(violations)
}

func check(rules any) []apperror.FieldError {
	err := validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperror.FieldError{{Message: err.Error(), Type: "internal"}}
	}

	violations := make([]apperror.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperror.FieldError{
			Message: messageFor(fe),
			Path:    []string{fe.Field()},
			Type:    fe.Tag(),
		})
	}
	return violations
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "max":
		return fmt.Sprintf("%s length must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func requiredViolation(field string) apperror.FieldError {
	return apperror.FieldError{
		Message: fmt.Sprintf("%s is required", field),
		Path:    []string{field},
		Type:    "required",
	}
}

func asError(violations []apperror.FieldError) error {
	if len(violations) == 0 {
		return nil
	}
	return &apperror.ValidationError{Violations: violations}
}
