package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrSessionNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "session")
}

type ErrFileCorrupted struct {
	error
}

func NewErrFileCorrupted(message string) *ErrFileCorrupted {
	return &ErrFileCorrupted{fmt.Errorf("bad request: %s", message)}
}

func NewErrSpreadsheetCorrupted(message string) *ErrFileCorrupted {
	return NewErrFileCorrupted(fmt.Sprintf("The provided spreadsheet is corrupted: %s", message))
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(ext string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported file format %q, supported formats: .xlsx, .csv", ext)}
}

// ErrInvalidGenerationForm covers the all-or-nothing validation of a
// generation request: empty selection or unset metadata means no request
// is built at all.
type ErrInvalidGenerationForm struct {
	error
}

func NewErrEmptySelection(sessionID uuid.UUID) *ErrInvalidGenerationForm {
	return &ErrInvalidGenerationForm{fmt.Errorf("no rows selected in session %s", sessionID)}
}

func NewErrMissingMetadata(field string) *ErrInvalidGenerationForm {
	return &ErrInvalidGenerationForm{fmt.Errorf("%s must be set before generating papers", field)}
}
