// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec256

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidEncoding indicates point or scalar octets that do not follow
	// the expected length or tag.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrNotOnCurve indicates point coordinates that do not satisfy the curve
	// equation.
	ErrNotOnCurve = ErrorKind("ErrNotOnCurve")

	// ErrPointAtInfinity indicates an operation whose result would be the
	// point at infinity, which is not a valid public key or ephemeral point.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")

	// ErrScalarOutOfRange indicates a 32-byte scalar that is not less than
	// the group order.
	ErrScalarOutOfRange = ErrorKind("ErrScalarOutOfRange")

	// ErrUnknownCurve indicates a curve name that is not supported.
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")

	// ErrBackend indicates the underlying curve library reported a failure
	// that does not map to a more specific kind.
	ErrBackend = ErrorKind("ErrBackend")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve arithmetic or encodings.  It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
