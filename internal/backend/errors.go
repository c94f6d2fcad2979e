// internal/backend/errors.go
package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError is a transport or HTTP failure talking to the store backend.
type FetchError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: backend returned %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError is a create/update payload rejected either locally or by
// the backend.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// NotFoundError is a detail request for an identifier the backend does not know.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// AuthError is a 401/403 from the backend, or a non-admin login.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

var ErrNotAdmin = &AuthError{StatusCode: http.StatusForbidden, Message: "account is not an administrator"}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
