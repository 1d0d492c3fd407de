package lrge

import "github.com/mbhall88/lrge/errs"

// The error kind taxonomy lives in package errs so that leaf packages
// (reader, sample, paf, stage, align) can return typed errors without
// importing this root package. These aliases let callers of the root
// package spell them as lrge.Error, lrge.BadConfig, and so on.
type (
	// Kind categorises an Error; see errs.Kind.
	Kind = errs.Kind
	// Error is the error type returned across lrge package boundaries.
	Error = errs.Error
)

const (
	Internal               = errs.Internal
	Io                     = errs.Io
	UnsupportedCompression = errs.UnsupportedCompression
	InvalidRecord          = errs.InvalidRecord
	InvalidId              = errs.InvalidId
	BadConfig              = errs.BadConfig
	IndexBuild             = errs.IndexBuild
)

// NewError builds an Error of the given Kind with a formatted message.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return errs.New(kind, format, args...)
}

// WrapError builds an Error of the given Kind, wrapping an underlying
// cause.
func WrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return errs.Wrap(kind, err, format, args...)
}
