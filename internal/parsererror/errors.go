// Package parsererror defines the error kinds a conversion run can end with.
// Every kind is terminal: the command reports it and exits non-zero.
package parsererror

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure.
type Kind string

const (
	KindInputNotFound      Kind = "InputNotFound"
	KindUnreadablePDF      Kind = "UnreadablePDF"
	KindUnrecognizedLayout Kind = "UnrecognizedLayout"
	KindOutputWriteFailure Kind = "OutputWriteFailure"
)

// Sentinels for errors.Is checks against any error of the matching kind.
var (
	ErrInputNotFound      = errors.New("input not found")
	ErrUnreadablePDF      = errors.New("unreadable PDF")
	ErrUnrecognizedLayout = errors.New("unrecognized layout")
	ErrOutputWriteFailure = errors.New("output write failure")
)

// InputNotFoundError is returned when the input path does not exist or is a directory.
type InputNotFoundError struct {
	FilePath string
	Err      error
}

func (e *InputNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input file '%s' not found: %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("input file '%s' not found", e.FilePath)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

func (e *InputNotFoundError) Is(target error) bool { return target == ErrInputNotFound }

func (e *InputNotFoundError) Kind() Kind { return KindInputNotFound }

// UnreadablePDFError is returned when the input cannot be read or is not a PDF
// with an extractable text layer.
type UnreadablePDFError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *UnreadablePDFError) Error() string {
	msg := fmt.Sprintf("cannot read PDF '%s'", e.FilePath)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *UnreadablePDFError) Unwrap() error { return e.Err }

func (e *UnreadablePDFError) Is(target error) bool { return target == ErrUnreadablePDF }

func (e *UnreadablePDFError) Kind() Kind { return KindUnreadablePDF }

// LayoutError is returned when a block inside the transaction table cannot be
// matched against the statement layout. Line is 1-based within the extracted text.
type LayoutError struct {
	Line    int
	Field   string
	Snippet string
	Err     error
}

func (e *LayoutError) Error() string {
	msg := fmt.Sprintf("line %d: failed to parse %s", e.Line, e.Field)
	if e.Snippet != "" {
		msg += fmt.Sprintf(" in '%s'", e.Snippet)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *LayoutError) Unwrap() error { return e.Err }

func (e *LayoutError) Is(target error) bool { return target == ErrUnrecognizedLayout }

func (e *LayoutError) Kind() Kind { return KindUnrecognizedLayout }

// WriteError is returned when the output CSV cannot be created or written.
type WriteError struct {
	FilePath string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write '%s': %v", e.FilePath, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrOutputWriteFailure }

func (e *WriteError) Kind() Kind { return KindOutputWriteFailure }

// KindOf returns the kind of the first classified error in err's chain,
// or "" when err carries none.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
