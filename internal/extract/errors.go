package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is matched by every UnsupportedFormatError
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrDocumentTooLarge reports an archive whose text part expands past the
// decompression limit
var ErrDocumentTooLarge = errors.New("document body exceeds size limit")

// UnsupportedFormatError reports a document whose format hint is not accepted
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("%s: no file extension", ErrUnsupportedFormat)
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedFormat, e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// ExtractionError reports corrupt, unreadable or empty document content
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
