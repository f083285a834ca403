// Package errors provides error handling for runquery.
//
// This package re-exports github.com/cockroachdb/errors (stack traces,
// wrapping, hints and details) and declares the sentinels shared by the
// store, lineage and query packages.
//
// Usage:
//
//	if err := decode(line); err != nil {
//	    return errors.Wrapf(err, "line %d", n)
//	}
//
//	if errors.Is(err, errors.ErrNotIndexed) {
//	    // caller passed a node from a different document
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across runquery.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrNotIndexed indicates a document node was passed that this index
	// never saw. This is a programming error on the caller's side, unlike
	// missing data which is reported as an absent result.
	ErrNotIndexed = New("element was not part of this index")
)

// IsNotIndexedError checks if an error is or wraps ErrNotIndexed
func IsNotIndexedError(err error) bool {
	return err != nil && Is(err, ErrNotIndexed)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotIndexedError creates a not-indexed error naming the offending node.
func NewNotIndexedError(kind, id string) error {
	err := Wrapf(ErrNotIndexed, "%s %q", kind, id)
	return WithHint(err, "pass nodes taken from documents ingested by the same store")
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
