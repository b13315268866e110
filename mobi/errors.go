package mobi

import (
	"errors"
	"fmt"
)

// Kind of merge failure. None of them is fatal for the book, caller is
// expected to proceed with unmerged book.
// ENUM(sidecar-absent, sidecar-ambiguous, count-mismatch, invalid-resource)
type MergeErrorKind int

var (
	ErrSidecarAbsent    = errors.New("no high resolution sidecar")
	ErrSidecarAmbiguous = errors.New("ambiguous high resolution sidecar")
	ErrCountMismatch    = errors.New("image count mismatch")
	ErrInvalidResource  = errors.New("invalid high resolution resource")
)

// MergeError reports why book could not be merged with its sidecar.
type MergeError struct {
	Kind MergeErrorKind

	Index      int // sidecar record index, invalid-resource
	Book       int // image placeholders in book, count-mismatch
	Sidecar    int // image slots in sidecar, count-mismatch
	Candidates int // sidecar-ambiguous
	Err        error
}

func (e *MergeError) Error() string {
	var msg string
	switch e.Kind {
	case MergeErrorKindSidecarAmbiguous:
		msg = fmt.Sprintf("%s: %d candidates", e.sentinel(), e.Candidates)
	case MergeErrorKindCountMismatch:
		msg = fmt.Sprintf("%s: book has %d image records, sidecar has %d", e.sentinel(), e.Book, e.Sidecar)
	case MergeErrorKindInvalidResource:
		msg = fmt.Sprintf("%s: sidecar record %d", e.sentinel(), e.Index)
	default:
		msg = e.sentinel().Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MergeError) sentinel() error {
	switch e.Kind {
	case MergeErrorKindSidecarAmbiguous:
		return ErrSidecarAmbiguous
	case MergeErrorKindCountMismatch:
		return ErrCountMismatch
	case MergeErrorKindInvalidResource:
		return ErrInvalidResource
	default:
		return ErrSidecarAbsent
	}
}

func (e *MergeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}
