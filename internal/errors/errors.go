package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrGenreNotFound is returned when a genre is not found.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrTitleNotFound is returned when a title is not found.
	ErrTitleNotFound = errors.New("title not found")
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrUsernameTaken is returned when the username is bound to another email.
	ErrUsernameTaken = errors.New("username bound to another email")
	// ErrEmailTaken is returned when the email is bound to another user.
	ErrEmailTaken = errors.New("email bound to another user")
	// ErrSlugTaken is returned when a catalog slug already exists.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrReviewExists is returned on a second review for the same title by the same author.
	ErrReviewExists = errors.New("one review per title per author")

	// ErrInvalidConfirmationCode is returned when a confirmation code fails
	// verification. Expired and malformed codes are deliberately
	// indistinguishable from wrong ones.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")

	// ErrPermissionDenied is returned when the permission evaluator refuses an action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrMethodNotAllowed is returned for verbs that are disabled on a route.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// ValidationError is a field-scoped input error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a field-scoped validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Error(), "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrGenreNotFound),
		errors.Is(err, ErrTitleNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), notFoundCode(err))
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrSlugTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SLUG_TAKEN")
	case errors.Is(err, ErrReviewExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "REVIEW_EXISTS")
	case errors.Is(err, ErrInvalidConfirmationCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CONFIRMATION_CODE")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrMethodNotAllowed):
		return NewHTTPError(http.StatusMethodNotAllowed, err.Error(), "METHOD_NOT_ALLOWED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func notFoundCode(err error) string {
	entity := strings.ToUpper(strings.SplitN(err.Error(), " ", 2)[0])
	return entity + "_NOT_FOUND"
}
