package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryStore        ErrorCategory = "STORE"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

// DomainError is the error shape every handler maps to an HTTP response.
// The status carried here is contractual: validation and conflict are 400,
// unauthorized is 401, not-found is 404.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string            { return e.code }
func (e *domainError) Category() ErrorCategory { return e.category }
func (e *domainError) HTTPStatus() int         { return e.status }
func (e *domainError) Message() string         { return e.message }
func (e *domainError) Unwrap() error           { return e.cause }

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is lets errors.Is match a derived error (one carrying a cause) against the
// base sentinel it was created from.
func (e *domainError) Is(target error) bool {
	other, ok := target.(*domainError)
	if !ok {
		return false
	}
	return e.code == other.code
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusBadRequest,
		"missing required environment variable",
	)

	ErrInvalidJWTSecret = NewDomainError(
		"INVALID_JWT_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"JWT_SECRET must be at least 32 bytes",
	)

	ErrInvalidEmail = NewDomainError(
		"INVALID_EMAIL",
		CategoryValidation,
		http.StatusBadRequest,
		"email is not a valid address",
	)

	ErrPasswordTooShort = NewDomainError(
		"PASSWORD_TOO_SHORT",
		CategoryValidation,
		http.StatusBadRequest,
		"password must be at least 6 characters",
	)

	ErrEmailTaken = NewDomainError(
		"EMAIL_TAKEN",
		CategoryConflict,
		http.StatusBadRequest,
		"email already registered",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid email or password",
	)

	ErrUnauthorized = NewDomainError(
		"UNAUTHORIZED",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"authentication required",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrTodoNotFound = NewDomainError(
		"TODO_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"todo not found",
	)

	ErrEmptyTodoText = NewDomainError(
		"EMPTY_TODO_TEXT",
		CategoryValidation,
		http.StatusBadRequest,
		"todo text must not be empty",
	)

	// Store failures surface as request-level 400s on write paths; they are
	// never allowed to crash the process.
	ErrStoreFailure = NewDomainError(
		"STORE_FAILURE",
		CategoryStore,
		http.StatusBadRequest,
		"storage operation failed",
	)

	ErrInternal = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
