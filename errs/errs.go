// Package errs defines the error-kind taxonomy shared by every lrge
// package (spec §7). It has no dependency on the root lrge package so that
// leaf packages (reader, sample, paf, stage, align) can return typed
// errors without creating an import cycle back through github.com/mbhall88/lrge.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind categorises an Error so callers can branch on failure type without
// string matching.
type Kind int

const (
	// Internal covers anything that should never happen in correct code.
	Internal Kind = iota
	// Io wraps an underlying filesystem or stream failure.
	Io
	// UnsupportedCompression is returned when a stream is detected as
	// compressed with a codec that has been disabled at build time.
	UnsupportedCompression
	// InvalidRecord is returned when a FASTA/FASTQ record is truncated or
	// otherwise malformed.
	InvalidRecord
	// InvalidId is returned when a read identifier cannot be represented
	// as a NUL-free C string, as required by the native aligner.
	InvalidId
	// BadConfig is returned when a configuration value is ambiguous
	// enough that guessing would be wrong.
	BadConfig
	// IndexBuild is returned when the native aligner fails to build its
	// minimizer index.
	IndexBuild
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case UnsupportedCompression:
		return "UnsupportedCompression"
	case InvalidRecord:
		return "InvalidRecord"
	case InvalidId:
		return "InvalidId"
	case BadConfig:
		return "BadConfig"
	case IndexBuild:
		return "IndexBuild"
	default:
		return "Internal"
	}
}

// Error is the error type returned across package boundaries in lrge. It
// carries a Kind so callers can distinguish, say, a bad seed from a
// truncated read without parsing message text.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// New builds an Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given Kind, wrapping an underlying cause
// with github.com/pkg/errors so stack context is preserved for logging.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}
