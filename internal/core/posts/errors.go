package posts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when no post matches the given id or title.
	// A malformed id is reported the same way as a well-formed id with no record.
	ErrNotFound = errors.New("post not found")

	// ErrIncompleteForm is the message surfaced when a required field is missing
	ErrIncompleteForm = errors.New("incomplete form")

	// ErrTitleExists is returned when another post already uses the title
	ErrTitleExists = errors.New("title already exists")
)

// ValidationError represents a rejected submission. Message is surfaced to
// clients verbatim; Fields lists the offending fields when known.
type ValidationError struct {
	Err     error
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewIncompleteFormError creates a validation error for missing required fields
func NewIncompleteFormError(missing []string) error {
	return &ValidationError{
		Err:     ErrIncompleteForm,
		Message: ErrIncompleteForm.Error(),
		Fields:  missing,
	}
}

// NewTitleExistsError creates a validation error for a duplicate title
func NewTitleExistsError() error {
	return &ValidationError{
		Err:     ErrTitleExists,
		Message: ErrTitleExists.Error(),
		Fields:  []string{"title"},
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// AsValidationError extracts the validation error from err, if any
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string // e.g., "post"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// UpstreamError wraps a failure of the document store or the media host.
// Its details are logged, never returned to clients.
type UpstreamError struct {
	Err error
	Op  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err with the failing operation name
func NewUpstreamError(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// IsUpstreamError checks if error came from the store or the media host
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}

// missingFieldsMessage renders the missing-field list for logs
func missingFieldsMessage(missing []string) string {
	return strings.Join(missing, ", ")
}
