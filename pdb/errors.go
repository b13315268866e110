package pdb

import (
	"errors"
	"fmt"
)

// Kind of container format failure.
// ENUM(bad-magic, truncated, encrypted)
type FormatErrorKind int

var (
	ErrBadMagic  = errors.New("unrecognized container signature")
	ErrTruncated = errors.New("truncated or malformed container")
	ErrEncrypted = errors.New("encrypted container")
)

// FormatError describes why a buffer could not be used as a container. Use
// errors.Is with ErrBadMagic, ErrTruncated or ErrEncrypted to check the kind.
type FormatError struct {
	Kind       FormatErrorKind
	CryptoType uint16 // only for encrypted
	Detail     string
}

func (e *FormatError) Error() string {
	switch {
	case e.Kind == FormatErrorKindEncrypted:
		return fmt.Sprintf("pdb: %s (crypto type %d)", e.Unwrap(), e.CryptoType)
	case e.Detail != "":
		return fmt.Sprintf("pdb: %s: %s", e.Unwrap(), e.Detail)
	default:
		return fmt.Sprintf("pdb: %s", e.Unwrap())
	}
}

func (e *FormatError) Unwrap() error {
	switch e.Kind {
	case FormatErrorKindBadMagic:
		return ErrBadMagic
	case FormatErrorKindEncrypted:
		return ErrEncrypted
	default:
		return ErrTruncated
	}
}

func truncated(format string, args ...any) error {
	return &FormatError{Kind: FormatErrorKindTruncated, Detail: fmt.Sprintf(format, args...)}
}
