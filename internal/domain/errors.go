package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrEmptyDocument       = errors.New("document is empty")
	ErrMissingDocument     = errors.New("at least one document is required")
	ErrFormFillerDisabled  = errors.New("form filler is not configured")
	ErrBlankForm           = errors.New("document looks like an unfilled template")
)

// ExtractionFailure is returned by a single extraction strategy when it cannot
// contribute a record. It is logged by the pipeline and never surfaced as a
// request failure.
type ExtractionFailure struct {
	Strategy Method
	Reason   string
	Err      error
}

func (e *ExtractionFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Strategy, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Strategy, e.Reason)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

// NewExtractionFailure creates an ExtractionFailure for the given strategy.
func NewExtractionFailure(strategy Method, reason string, err error) *ExtractionFailure {
	return &ExtractionFailure{Strategy: strategy, Reason: reason, Err: err}
}
