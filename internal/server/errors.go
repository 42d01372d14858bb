package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/extract"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrTooLarge indicates an upload over the configured size limit
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("file exceeds the %d byte upload limit", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		tooLargeErr    *ErrTooLarge
		roleErr        *analysis.UnknownRoleError
		unsupportedErr *extract.UnsupportedFormatError
		extractionErr  *extract.ExtractionError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &roleErr), errors.As(err, &unsupportedErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to return to clients
func publicMessage(err error) string {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
