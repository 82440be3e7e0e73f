package docforge

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ingest pipeline. Wrap-aware callers can test
// with errors.Is.
var (
	// ErrUnsupportedFormat means the file extension (or explicit format)
	// is not recognized. It fails fast, before any parsing attempt.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrMalformedInput means the input could not be parsed at all, such
	// as text that is not valid JSON for the JSON ingester.
	ErrMalformedInput = errors.New("malformed input")

	// ErrExternalConversion means an external DOCX or PDF converter
	// failed. The pipeline does not retry.
	ErrExternalConversion = errors.New("external conversion failed")
)

// StageError names the file and pipeline stage behind a failure, so
// user-visible messages can say what failed and where.
type StageError struct {
	File  string
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s stage: %v", e.File, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *Ingester) stageError(stage string, err error) error {
	return &StageError{File: e.filename, Stage: stage, Err: err}
}
