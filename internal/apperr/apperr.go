// Package apperr defines the error kinds raised by the TRF ingestion and
// filter design pipeline.
package apperr

import (
	"errors"
	"fmt"
)

// Kind tags an error for host-side presentation
type Kind string

const (
	KindFileAccess          Kind = "file_access"
	KindEmptyFile           Kind = "empty_file"
	KindOversize            Kind = "oversize"
	KindUnparseableFormat   Kind = "unparseable_format"
	KindFrequencyRangeEmpty Kind = "frequency_range_empty"
	KindInvalidConfig       Kind = "invalid_config"
)

// Error is a pipeline failure annotated with its kind
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind with a formatted message
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap annotates err with a kind. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
