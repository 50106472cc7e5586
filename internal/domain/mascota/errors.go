package mascota

import (
	"errors"
	"fmt"
)

// ErrSubmitInProgress is returned when a submit is attempted while another one
// is still running for the same form.
var ErrSubmitInProgress = errors.New("submit already in progress")

// Messages shown to the user when the server gives nothing better.
const (
	MsgUnknownError      = "Error desconocido"
	MsgConnectionError   = "Error de conexión. Por favor intenta de nuevo."
	MsgRecentFetchFailed = "Error al cargar datos"
)

// ValidationError reports input rejected locally, before any network call.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// UserMessage returns the text to show in a notification.
func (e *ValidationError) UserMessage() string { return e.Message }

// UploadError reports a failed image upload. StatusCode is zero on transport
// failures.
type UploadError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements error.
func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image upload failed: %v", e.Err)
	}
	return fmt.Sprintf("image upload failed: status=%d body=%s", e.StatusCode, e.Body)
}

// Unwrap returns the transport error, if any.
func (e *UploadError) Unwrap() error { return e.Err }

// UserMessage returns the text to show in a notification.
func (e *UploadError) UserMessage() string {
	if e.Err != nil {
		return fmt.Sprintf("Error en subida de imagen: %v", e.Err)
	}
	return fmt.Sprintf("Error al subir imagen: %d - %s", e.StatusCode, e.Body)
}

// SubmitError reports a failed record create or update. Detail carries the
// server supplied message when the response had one.
type SubmitError struct {
	StatusCode int
	Detail     string
	Err        error
}

// Error implements error.
func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record submit failed: %v", e.Err)
	}
	return fmt.Sprintf("record submit failed: status=%d detail=%s", e.StatusCode, e.Detail)
}

// Unwrap returns the transport error, if any.
func (e *SubmitError) Unwrap() error { return e.Err }

// UserMessage returns the server detail verbatim, or a generic fallback.
func (e *SubmitError) UserMessage() string {
	if e.Err != nil {
		return MsgConnectionError
	}
	if e.Detail != "" {
		return e.Detail
	}
	return MsgUnknownError
}

// FetchError reports a failed listing of records.
type FetchError struct {
	StatusCode int
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listing records failed: %v", e.Err)
	}
	return fmt.Sprintf("listing records failed: status=%d", e.StatusCode)
}

// Unwrap returns the transport error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage returns the text to show in the recent records panel.
func (e *FetchError) UserMessage() string { return MsgRecentFetchFailed }

// UserMessage extracts the notification text from any error returned by the
// form workflow.
func UserMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return MsgConnectionError
}
